package handlers

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
	applog "audiotech/internal/log"
	"audiotech/internal/services"
	"audiotech/internal/shell"
	"audiotech/internal/validate"
)

type ProfileHandler struct {
	Auth    *services.AuthService
	Clients *Clients
}

// GET /profile
func (h *ProfileHandler) View(c *fiber.Ctx) error {
	s, ok := h.Clients.Navigate(c, domain.PageProfile)
	if !ok {
		return c.Redirect(pathOf(s))
	}
	data := fiber.Map{"Profile": s.User}
	if c.Query("saved") != "" {
		data["Flash"] = "Profile updated."
	}
	return render(c, "profile", data)
}

// POST /profile, behind RequireUser. Email and role are not editable.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	cur, _ := c.Locals("user").(*domain.User)
	if cur == nil {
		return c.Redirect("/login")
	}
	u := *cur
	u.Name = strings.TrimSpace(c.FormValue("name"))
	u.Phone = strings.TrimSpace(c.FormValue("phone"))
	u.Address = strings.TrimSpace(c.FormValue("address"))

	fail := func(err error) error {
		applog.Security(c, "validation.fail", map[string]any{"form": "profile", "error": err.Error()})
		return renderStatus(c, fiber.StatusBadRequest, "profile", fiber.Map{"Profile": &u, "Err": err.Error()})
	}
	if err := validate.Required(u.Name); err != nil {
		return fail(err)
	}
	if fh, err := c.FormFile("avatar"); err == nil && fh.Size > 0 {
		ct := fh.Header.Get("Content-Type")
		if err := validate.Avatar(fh.Size, ct); err != nil {
			return fail(err)
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		raw, err := io.ReadAll(io.LimitReader(f, validate.MaxAvatarBytes+1))
		f.Close()
		if err != nil {
			return err
		}
		u.Avatar = "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(raw)
	}

	saved, err := h.Auth.UpdateProfile(c.UserContext(), h.Clients.Scopes(c), u)
	if err != nil {
		return err
	}
	h.Clients.Update(c, func(s shell.State) shell.State { return shell.ProfileUpdated(s, saved) })
	applog.Audit(c, "profile.update", map[string]any{"avatar": u.Avatar != cur.Avatar})
	return c.Redirect("/profile?saved=1")
}
