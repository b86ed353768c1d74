package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
	applog "audiotech/internal/log"
	"audiotech/internal/services"
	"audiotech/internal/shell"
)

type OrderHandler struct {
	Orders  *services.OrderService
	Clients *Clients
}

func checkoutForm(c *fiber.Ctx) services.CheckoutRequest {
	return services.CheckoutRequest{
		FullName:      c.FormValue("fullName"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		Address:       c.FormValue("address"),
		City:          c.FormValue("city"),
		PaymentMethod: c.FormValue("paymentMethod"),
	}
}

// GET /checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	s, ok := h.Clients.Navigate(c, domain.PageCheckout)
	if !ok || len(s.Cart) == 0 {
		return c.Redirect("/cart")
	}
	form := services.CheckoutRequest{PaymentMethod: services.PaymentCOD}
	if s.User != nil {
		form.FullName = s.User.Name
		form.Email = s.User.Email
		form.Phone = s.User.Phone
		form.Address = s.User.Address
	}
	return render(c, "checkout", fiber.Map{"Items": s.Cart, "Totals": shell.Totals(s), "Form": form})
}

// POST /checkout
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	s := h.Clients.Update(c, func(s shell.State) shell.State { return shell.SetLoading(s, true) })
	defer h.Clients.Update(c, func(s shell.State) shell.State { return shell.SetLoading(s, false) })

	req := checkoutForm(c)
	o, err := h.Orders.Place(s.Cart, req)
	if errors.Is(err, services.ErrEmptyCart) {
		return c.Redirect("/cart")
	}
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "checkout", "error": err.Error()})
		return renderStatus(c, fiber.StatusBadRequest, "checkout", fiber.Map{
			"Items": s.Cart, "Totals": shell.Totals(s), "Form": req, "Err": err.Error(),
		})
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"items":    len(o.Items),
		"total":    o.Total.StringFixed(2),
		"payment":  o.Payment,
	})
	h.Clients.Update(c, shell.OrderPlaced)
	c.Locals("cart_count", 0)
	return render(c, "order", fiber.Map{"Order": o})
}
