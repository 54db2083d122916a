package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, price, stock FROM products ORDER BY id
	`)
	return out, err
}

// Search matches keyword as a case-insensitive substring of name OR as a
// substring of the textual id. Empty keyword returns everything.
func (r *ProductRepo) Search(keyword string) ([]domain.Product, error) {
	if keyword == "" {
		return r.List()
	}
	like := "%" + strings.ToLower(keyword) + "%"
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT id, name, price, stock FROM products
	  WHERE LOWER(name) LIKE ? OR CAST(id AS TEXT) LIKE ?
	  ORDER BY id
	`, like, like)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT id, name, price, stock FROM products WHERE id = ?`, id)
	return p, err
}

// GetForUpdate reads a product row inside tx so price and stock come from
// the same snapshot the decrement will run against.
func (r *ProductRepo) GetForUpdate(tx *sqlx.Tx, id int64) (domain.Product, error) {
	var p domain.Product
	err := tx.Get(&p, `SELECT id, name, price, stock FROM products WHERE id = ?`, id)
	return p, err
}

// FindIDByName returns the id of the product whose name matches name
// case-insensitively, or sql.ErrNoRows.
func (r *ProductRepo) FindIDByName(name string) (int64, error) {
	var id int64
	err := r.db.Get(&id, `SELECT id FROM products WHERE LOWER(name) = LOWER(?)`, name)
	return id, err
}

func (r *ProductRepo) Insert(name string, price float64, stock int) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, price, stock) VALUES (?, ?, ?)
	`, name, price, stock)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Update(id int64, name string, price float64, stock int) (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE products SET name = ?, price = ?, stock = ? WHERE id = ?
	`, name, price, stock, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the row unconditionally; billing history keeps its own
// snapshot and is not touched.
func (r *ProductRepo) Delete(id int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DecrementStock subtracts "by" units inside tx only if enough stock
// exists. Zero rows affected means the guard refused the decrement.
func (r *ProductRepo) DecrementStock(tx *sqlx.Tx, id int64, by int) (int64, error) {
	res, err := tx.Exec(`
	  UPDATE products
	  SET stock = stock - ?
	  WHERE id = ? AND stock >= ?
	`, by, id, by)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// IsUniqueViolation reports whether err is the sqlite unique-index error
// for products.name. Used as a backstop behind the service-level name
// pre-check, since two adds can still race to the same name.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
