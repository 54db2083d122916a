package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
	applog "github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/log"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/receipt"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/services"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/validate"
)

type BillingHandler struct {
	Billing  *services.BillingService
	Catalog  *services.CatalogService
	Receipts *receipt.Emitter
}

// Sell runs the inventory transaction for the selected product, then hands
// the committed record to the receipt emitter. The receipt is best-effort:
// its failure becomes a warning banner, never a rollback.
func (h *BillingHandler) Sell(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return h.renderSellFailed(c, domain.InvalidInput("select a product first"))
	}
	customer, ok := validate.Customer(c.FormValue("customer"))
	if !ok {
		return h.renderSellFailed(c, domain.InvalidInput("customer name required"))
	}
	qty := validate.Qty(c.FormValue("qty"))

	rec, err := h.Billing.Sell(productID, customer, qty)
	if err != nil {
		applog.Warn(c, "sell.fail", err, map[string]any{"product_id": productID, "qty": qty})
		return h.renderSellFailed(c, err)
	}
	applog.Audit(c, "sell", map[string]any{
		"record_id": rec.ID, "product_id": rec.ProductID, "qty": rec.Quantity, "total": rec.Total,
	})

	msg := fmt.Sprintf("Sold %d x %s to %s for %.2f.", rec.Quantity, rec.ProductName, rec.CustomerName, rec.Total)
	warn := ""
	path, err := h.Receipts.Write(rec)
	if err != nil {
		applog.Warn(c, "receipt.write.fail", err, map[string]any{"record_id": rec.ID, "path": path})
		warn = "The sale is recorded, but the receipt could not be saved"
		if path != "" {
			warn += " (partial file at " + path + ")"
		}
		warn += "."
	} else {
		msg += " Receipt saved at " + path + "."
		if err := h.Receipts.Open(path); err != nil {
			applog.Warn(c, "receipt.open.fail", err, map[string]any{"path": path})
			warn = "Could not open the receipt automatically."
		}
	}

	products, lerr := h.Catalog.List()
	if lerr != nil {
		applog.Error(c, "catalog.list", lerr, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not reload the catalog. Please retry."})
	}
	return render(c, "index", fiber.Map{
		"Products": products, "Count": len(products), "Msg": msg, "Warn": warn,
	})
}

// History lists the most recent billing records.
func (h *BillingHandler) History(c *fiber.Ctx) error {
	records, err := h.Billing.History(100)
	if err != nil {
		applog.Error(c, "billing.history", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not load billing history. Please retry."})
	}
	return render(c, "records", fiber.Map{"Records": records, "Count": len(records)})
}

func (h *BillingHandler) renderSellFailed(c *fiber.Ctx, err error) error {
	products, lerr := h.Catalog.List()
	if lerr != nil {
		applog.Error(c, "catalog.list", lerr, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}
	c.Status(statusFor(err))
	return render(c, "index", fiber.Map{
		"Products": products, "Count": len(products),
		"Err":          err.Error(),
		"FormCustomer": c.FormValue("customer"),
	})
}
