package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/repos"
)

// BillingService is the inventory transaction engine: it validates a sale,
// snapshots the product, appends the billing record, and decrements stock
// as one unit. Either the record and the decrement both commit, or neither
// does.
type BillingService struct {
	DB      *sqlx.DB
	Prods   *repos.ProductRepo
	Billing *repos.BillingRepo
}

func NewBillingService(db *sqlx.DB, prods *repos.ProductRepo, billing *repos.BillingRepo) *BillingService {
	return &BillingService{DB: db, Prods: prods, Billing: billing}
}

// Sell performs the validated decrement-and-record operation for qty units
// of productID. It returns the committed record, or a domain.Rejection and
// an unchanged store.
//
// The product read, total computation, record insert, and stock decrement
// all run inside one transaction, so the price used for the total is the
// price that was current when the stock check passed. The decrement is
// additionally guarded with "stock >= qty" so a racing sale on the same
// product cannot push stock below zero.
func (s *BillingService) Sell(productID int64, customer string, qty int) (domain.BillingRecord, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return domain.BillingRecord{}, domain.InvalidInput("customer name required")
	}
	if qty < 1 {
		return domain.BillingRecord{}, domain.InvalidInput("quantity must be at least 1")
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return domain.BillingRecord{}, domain.TransactionFailed(err)
	}
	defer func() { _ = tx.Rollback() }()

	p, err := s.Prods.GetForUpdate(tx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BillingRecord{}, domain.NotFound(fmt.Sprintf("product %d not found", productID))
	}
	if err != nil {
		return domain.BillingRecord{}, domain.TransactionFailed(err)
	}
	if p.Stock < qty {
		return domain.BillingRecord{}, domain.InsufficientStock(p.Stock)
	}

	rec := domain.BillingRecord{
		CustomerName: customer,
		ProductID:    p.ID,
		ProductName:  p.Name,
		Quantity:     qty,
		Total:        float64(qty) * p.Price,
	}
	if err := s.Billing.Insert(tx, &rec); err != nil {
		return domain.BillingRecord{}, domain.TransactionFailed(err)
	}

	n, err := s.Prods.DecrementStock(tx, p.ID, qty)
	if err != nil {
		return domain.BillingRecord{}, domain.TransactionFailed(err)
	}
	if n == 0 {
		// A concurrent sale drained the stock between our read and the
		// guarded update. Roll back the record and report what's left.
		left := 0
		if cur, err := s.Prods.GetForUpdate(tx, p.ID); err == nil {
			left = cur.Stock
		}
		return domain.BillingRecord{}, domain.InsufficientStock(left)
	}

	if err := tx.Commit(); err != nil {
		return domain.BillingRecord{}, domain.TransactionFailed(err)
	}
	return rec, nil
}

func (s *BillingService) History(limit int) ([]domain.BillingRecord, error) {
	return s.Billing.ListLatest(limit)
}
