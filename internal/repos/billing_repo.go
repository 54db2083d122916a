package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
)

type BillingRepo struct{ db *sqlx.DB }

func NewBillingRepo(db *sqlx.DB) *BillingRepo { return &BillingRepo{db: db} }

// Insert appends a billing record inside tx and fills in the assigned id
// and store-side created_at. The caller owns the transaction; the insert
// must commit or roll back together with the stock decrement.
func (r *BillingRepo) Insert(tx *sqlx.Tx, rec *domain.BillingRecord) error {
	res, err := tx.Exec(`
	  INSERT INTO billing_records (customer_name, product_id, product_name, quantity, total)
	  VALUES (?, ?, ?, ?, ?)
	`, rec.CustomerName, rec.ProductID, rec.ProductName, rec.Quantity, rec.Total)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return tx.Get(&rec.CreatedAt, `SELECT created_at FROM billing_records WHERE id = ?`, id)
}

func (r *BillingRepo) ListLatest(limit int) ([]domain.BillingRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.BillingRecord
	err := r.db.Select(&out, `
	  SELECT id, customer_name, product_id, product_name, quantity, total, created_at
	  FROM billing_records
	  ORDER BY id DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *BillingRepo) ListByProduct(productID int64) ([]domain.BillingRecord, error) {
	var out []domain.BillingRecord
	err := r.db.Select(&out, `
	  SELECT id, customer_name, product_id, product_name, quantity, total, created_at
	  FROM billing_records
	  WHERE product_id = ?
	  ORDER BY id
	`, productID)
	return out, err
}

func (r *BillingRepo) CountByProduct(productID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM billing_records WHERE product_id = ?`, productID)
	return n, err
}
