package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/config"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/receipt"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/repos"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/services"
)

type Deps struct {
	CatalogHandler   *CatalogHandler
	BillingHandler   *BillingHandler
	InventoryHandler *InventoryHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	billRepo := repos.NewBillingRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, cfg.LowStockThreshold)
	billingSvc := services.NewBillingService(db, prodRepo, billRepo)
	emitter := receipt.NewEmitter(cfg.ReceiptsDir)

	return &Deps{
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		BillingHandler:   &BillingHandler{Billing: billingSvc, Catalog: catalogSvc, Receipts: emitter},
		InventoryHandler: &InventoryHandler{Catalog: catalogSvc},
	}
}
