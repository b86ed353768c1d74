package handlers

import (
	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
	applog "audiotech/internal/log"
	"audiotech/internal/services"
	"audiotech/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Clients *Clients
}

func (h *AdminHandler) page(c *fiber.Ctx, status int, extra fiber.Map) error {
	products, err := h.Catalog.GetProducts(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load products"})
	}
	data := fiber.Map{"Products": products, "Categories": []string{"Headphones", "Wireless", "Speakers", "Studio"}}
	for k, v := range extra {
		data[k] = v
	}
	return renderStatus(c, status, "admin", data)
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	h.Clients.Navigate(c, domain.PageAdmin)
	return h.page(c, fiber.StatusOK, nil)
}

// POST /admin/products
func (h *AdminHandler) AddProduct(c *fiber.Ctx) error {
	np := services.NewProduct{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Image:       c.FormValue("image"),
		Description: c.FormValue("description"),
	}
	price, ok := validate.Price(c.FormValue("price"))
	np.Price = price
	if err := np.Validate(); !ok || err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "product"})
		return h.page(c, fiber.StatusBadRequest, fiber.Map{"Err": validate.ErrInvalidProduct.Error(), "Form": np})
	}
	p, err := h.Catalog.AddProduct(c.UserContext(), np.Product())
	if err != nil {
		applog.Error(c, "admin.products.add.fail", err, nil)
		return err
	}
	applog.Audit(c, "admin.products.add", map[string]any{"product_id": p.ID, "name": p.Name, "price": p.Price})
	return c.Redirect("/admin")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if _, err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return err
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin")
}
