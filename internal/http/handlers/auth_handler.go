package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"audiotech/internal/domain"
	"audiotech/internal/log"
	"audiotech/internal/repos"
	"audiotech/internal/services"
	"audiotech/internal/shell"
	"audiotech/internal/validate"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Clients *Clients
}

const msgBadLogin = "Invalid email or password"

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	h.Clients.Navigate(c, domain.PageLogin)
	data := fiber.Map{"Err": ""}
	if c.Query("registered") != "" {
		data["Flash"] = "Registration successful. Please log in."
	}
	return render(c, "login", data)
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	remember := c.FormValue("remember") != ""
	// the configured admin address may not be a public one (admin@localhost)
	if _, ok := validate.Email(email); !ok && repos.NormalizeEmail(email) != h.Auth.AdminEmail {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": msgBadLogin, "Email": email})
	}

	u, err := h.Auth.Login(c.UserContext(), h.Clients.Scopes(c), email, pass, remember)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": msgBadLogin, "Email": email})
	}
	if err != nil {
		return err
	}

	c.Locals("user_email", u.Email)
	log.Audit(c, "auth.login.success", map[string]any{"email": u.Email, "remember": remember, "role": u.Role})
	s := h.Clients.Update(c, func(s shell.State) shell.State { return shell.LoginSucceeded(s, *u) })
	return c.Redirect(pathOf(s))
}

// GET /register
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	h.Clients.Navigate(c, domain.PageRegister)
	return render(c, "register", fiber.Map{"Err": ""})
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req := services.RegisterRequest{
		FirstName:       c.FormValue("firstName"),
		LastName:        c.FormValue("lastName"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirmPassword"),
	}
	form := fiber.Map{"FirstName": req.FirstName, "LastName": req.LastName, "Email": req.Email}

	u, err := h.Auth.Register(c.UserContext(), req)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		log.Security(c, "auth.register.fail", map[string]any{"email": req.Email, "reason": "taken"})
		form["Err"] = err.Error()
		return renderStatus(c, fiber.StatusConflict, "register", form)
	case isValidation(err):
		log.Security(c, "validation.fail", map[string]any{"form": "register", "error": err.Error()})
		form["Err"] = err.Error()
		return renderStatus(c, fiber.StatusBadRequest, "register", form)
	case err != nil:
		return err
	}

	log.Audit(c, "auth.register", map[string]any{"email": u.Email})
	h.Clients.Update(c, shell.Registered)
	return c.Redirect("/login?registered=1")
}

// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c.UserContext(), h.Clients.Scopes(c)); err != nil {
		return err
	}
	h.Clients.Update(c, shell.LoggedOut)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/login")
}

func isValidation(err error) bool {
	for _, target := range []error{
		validate.ErrMissingField,
		validate.ErrInvalidEmail,
		validate.ErrPasswordMismatch,
		validate.ErrPasswordTooShort,
		validate.ErrPasswordTooLong,
		validate.ErrAvatarTooLarge,
		validate.ErrAvatarType,
		validate.ErrInvalidProduct,
		validate.ErrInvalidPayment,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
