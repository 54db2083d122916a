package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/domain"
	applog "github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/log"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/services"
	"github.com/therealahmadhassan/Product-Inventory-Manager-SCD/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Home renders the catalog table with the add/update/delete and billing
// forms. The table is always a fresh List(), never a cached view.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		applog.Error(c, "catalog.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}
	return render(c, "index", fiber.Map{"Products": products, "Count": len(products)})
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	q := validate.Keyword(c.Query("q"))
	products, err := h.Catalog.Search(q)
	if err != nil {
		applog.Error(c, "catalog.search", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not load results. Please retry."})
	}
	return render(c, "index", fiber.Map{"Q": q, "Products": products, "Count": len(products)})
}

func (h *CatalogHandler) Add(c *fiber.Ctx) error {
	name, price, stock, rej := parseProductForm(c)
	if rej != nil {
		return h.renderFailed(c, rej)
	}

	p, err := h.Catalog.Add(name, price, stock)
	if err != nil {
		applog.Warn(c, "product.add.fail", err, map[string]any{"name": name})
		return h.renderFailed(c, err)
	}
	applog.Audit(c, "product.add", map[string]any{"id": p.ID, "name": p.Name})
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return h.renderFailed(c, domain.InvalidInput("invalid product id"))
	}
	name, price, stock, rej := parseProductForm(c)
	if rej != nil {
		return h.renderFailed(c, rej)
	}

	p, err := h.Catalog.Update(id, name, price, stock)
	if err != nil {
		applog.Warn(c, "product.update.fail", err, map[string]any{"id": id})
		return h.renderFailed(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": p.ID, "name": p.Name})
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return h.renderFailed(c, domain.InvalidInput("invalid product id"))
	}
	if err := h.Catalog.Delete(id); err != nil {
		applog.Warn(c, "product.delete.fail", err, map[string]any{"id": id})
		return h.renderFailed(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": id})
	return c.Redirect("/", fiber.StatusSeeOther)
}

// renderFailed re-renders the catalog page with the rejection message and
// the submitted field values left intact for correction.
func (h *CatalogHandler) renderFailed(c *fiber.Ctx, err error) error {
	products, lerr := h.Catalog.List()
	if lerr != nil {
		applog.Error(c, "catalog.list", lerr, nil)
		return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}
	data := fiber.Map{
		"Products":     products,
		"Count":        len(products),
		"Err":          err.Error(),
		"FormName":     c.FormValue("name"),
		"FormPrice":    c.FormValue("price"),
		"FormStock":    c.FormValue("stock"),
		"FormCustomer": c.FormValue("customer"),
	}
	// Through render() so the corrected resubmit still carries a CSRF token.
	c.Status(statusFor(err))
	return render(c, "index", data)
}

func parseProductForm(c *fiber.Ctx) (string, float64, int, error) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return "", 0, 0, domain.InvalidInput("product name required")
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return "", 0, 0, domain.InvalidInput("price must be a non-negative number")
	}
	stock, ok := validate.Stock(c.FormValue("stock"))
	if !ok {
		return "", 0, 0, domain.InvalidInput("stock must be a non-negative integer")
	}
	return name, price, stock, nil
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput, domain.KindInsufficientStock:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindDuplicateName:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
