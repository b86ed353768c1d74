package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "audiotech/internal/log"
	"audiotech/internal/services"
)

func RequireAdmin(cl *Clients, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentUser(c.UserContext(), cl.Scopes(c))
		if err != nil {
			return err
		}
		if u == nil {
			return c.Redirect("/login")
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"email": u.Email})
			return renderStatus(c, fiber.StatusForbidden, "notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(cl *Clients, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentUser(c.UserContext(), cl.Scopes(c))
		if err != nil {
			return err
		}
		if u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
