package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo

	// LowStockThreshold flags products at or below this count. Display
	// only; nothing is enforced here.
	LowStockThreshold int
}

func NewCatalogService(prods *repos.ProductRepo, lowStockThreshold int) *CatalogService {
	return &CatalogService{Prods: prods, LowStockThreshold: lowStockThreshold}
}

func (s *CatalogService) List() ([]domain.ProductView, error) {
	prods, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	return s.annotate(prods), nil
}

func (s *CatalogService) Search(keyword string) ([]domain.ProductView, error) {
	prods, err := s.Prods.Search(strings.TrimSpace(keyword))
	if err != nil {
		return nil, err
	}
	return s.annotate(prods), nil
}

// Add creates a product. Name uniqueness is case-insensitive: a pre-check
// catches the common case with a friendly message, and the unique index on
// LOWER(name) backstops a racing add.
func (s *CatalogService) Add(name string, price float64, stock int) (domain.Product, error) {
	name, err := checkFields(name, price, stock)
	if err != nil {
		return domain.Product{}, err
	}

	if _, err := s.Prods.FindIDByName(name); err == nil {
		return domain.Product{}, domain.DuplicateName(name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.TransactionFailed(err)
	}

	id, err := s.Prods.Insert(name, price, stock)
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.Product{}, domain.DuplicateName(name)
		}
		return domain.Product{}, domain.TransactionFailed(err)
	}
	return s.Prods.Get(id)
}

// Update overwrites name, price, and stock. Renaming to a name held by a
// different product is a DuplicateName rejection; keeping one's own name
// (in any letter case) is fine.
func (s *CatalogService) Update(id int64, name string, price float64, stock int) (domain.Product, error) {
	name, err := checkFields(name, price, stock)
	if err != nil {
		return domain.Product{}, err
	}

	if otherID, err := s.Prods.FindIDByName(name); err == nil {
		if otherID != id {
			return domain.Product{}, domain.DuplicateName(name)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.TransactionFailed(err)
	}

	n, err := s.Prods.Update(id, name, price, stock)
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.Product{}, domain.DuplicateName(name)
		}
		return domain.Product{}, domain.TransactionFailed(err)
	}
	if n == 0 {
		return domain.Product{}, domain.NotFound(fmt.Sprintf("product %d not found", id))
	}
	return s.Prods.Get(id)
}

// Delete removes the product row only. Billing history carries its own
// snapshot of the product and is untouched.
func (s *CatalogService) Delete(id int64) error {
	n, err := s.Prods.Delete(id)
	if err != nil {
		return domain.TransactionFailed(err)
	}
	if n == 0 {
		return domain.NotFound(fmt.Sprintf("product %d not found", id))
	}
	return nil
}

// Availability maps current stock to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
// A missing product reads as out of stock rather than an error.
func (s *CatalogService) Availability(id int64) (domain.Availability, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
	}
	if err != nil {
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case p.Stock > s.LowStockThreshold:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Stock}, nil
}

func (s *CatalogService) annotate(prods []domain.Product) []domain.ProductView {
	out := make([]domain.ProductView, 0, len(prods))
	for _, p := range prods {
		out = append(out, domain.ProductView{Product: p, LowStock: p.Stock <= s.LowStockThreshold})
	}
	return out
}

func checkFields(name string, price float64, stock int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.InvalidInput("product name required")
	}
	if price < 0 {
		return "", domain.InvalidInput("price must be a non-negative number")
	}
	if stock < 0 {
		return "", domain.InvalidInput("stock must be a non-negative integer")
	}
	return name, nil
}
