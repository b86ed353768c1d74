package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if n, ok := c.Locals("cart_count").(int); ok {
		data["CartCount"] = n
	}
	// token the csrf middleware put into Locals, cookie as fallback
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

// renderStatus is render with a non-200 status, for forms re-shown with an error.
func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}
