package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
	"audiotech/internal/log"
	"audiotech/internal/services"
	"audiotech/internal/shell"
	"audiotech/internal/validate"
)

type CartHandler struct {
	Catalog *services.CatalogService
	Clients *Clients
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	p, err := h.Catalog.Find(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err != nil {
		return err
	}
	h.Clients.Update(c, func(s shell.State) shell.State { return shell.AddToCart(s, p, qty) })
	return c.Redirect("/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	h.Clients.Update(c, func(s shell.State) shell.State { return shell.RemoveFromCart(s, id) })
	return c.Redirect("/cart")
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	s, _ := h.Clients.Navigate(c, domain.PageCart)
	c.Locals("cart_count", shell.CartCount(s))
	return render(c, "cart", fiber.Map{"Items": s.Cart, "Totals": shell.Totals(s)})
}
