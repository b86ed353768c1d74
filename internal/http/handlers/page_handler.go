package handlers

import (
	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
)

// PageHandler serves the static content pages.
type PageHandler struct {
	Clients *Clients
}

func (h *PageHandler) Support(c *fiber.Ctx) error {
	h.Clients.Navigate(c, domain.PageSupport)
	return render(c, "support", nil)
}

func (h *PageHandler) Tech(c *fiber.Ctx) error {
	h.Clients.Navigate(c, domain.PageTech)
	return render(c, "tech", fiber.Map{"Featured": h.featured(c)})
}

func (h *PageHandler) featured(c *fiber.Ctx) domain.Product {
	return h.Clients.State(c).Selected
}
