package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
	"audiotech/internal/log"
	"audiotech/internal/services"
	"audiotech/internal/shell"
	"audiotech/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Clients *Clients
}

const homeNewArrivals = 4

// GET /
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	h.Clients.Navigate(c, domain.PageHome)
	products, err := h.Catalog.GetProducts(c.UserContext())
	if err != nil {
		return err
	}
	if len(products) > homeNewArrivals {
		products = products[:homeNewArrivals]
	}
	return render(c, "home", fiber.Map{"Featured": services.Featured(), "Products": products})
}

// GET /catalog?q=
// Without q the catalog keeps showing the last search; ?clear=1 drops it.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	var s shell.State
	switch {
	case strings.TrimSpace(rawQ) != "":
		q, ok := validate.Q(rawQ)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return renderStatus(c, fiber.StatusBadRequest, "catalog", fiber.Map{
				"Q": "", "Products": []domain.Product{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
		s = h.Clients.Update(c, func(s shell.State) shell.State { return shell.Search(s, q) })
	case c.Query("clear") != "":
		s = h.Clients.Update(c, func(s shell.State) shell.State {
			return shell.Navigate(shell.ClearSearch(s), domain.PageCatalog)
		})
	default:
		s, _ = h.Clients.Navigate(c, domain.PageCatalog)
	}

	products, err := h.Catalog.Search(c.UserContext(), s.Query)
	if err != nil {
		log.Error(c, "catalog.error", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}
	return render(c, "catalog", fiber.Map{"Q": s.Query, "Products": products, "Count": len(products)})
}

// GET /product/:id
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.Find(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err != nil {
		return err
	}
	h.Clients.Update(c, func(s shell.State) shell.State { return shell.SelectProduct(s, p) })
	return render(c, "product", fiber.Map{"P": p})
}

// GET /api/v1/products
func (h *CatalogHandler) API(c *fiber.Ctx) error {
	products, err := h.Catalog.GetProducts(c.UserContext())
	if err != nil {
		log.Error(c, "api.products.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(products)
}
