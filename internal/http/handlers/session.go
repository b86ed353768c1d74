package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"audiotech/internal/domain"
	"audiotech/internal/repos"
	"audiotech/internal/services"
	"audiotech/internal/shell"
)

const (
	cookieSID = "sid"
	cookieDID = "did"
)

// Clients resolves the storage scopes and shell state of the browser
// behind a request.
type Clients struct {
	// Durable backs the persistent scope, Sessions the per-session one.
	Durable  repos.Store
	Sessions repos.Store
	Shell    *shell.Registry
}

// issued ids are kept in Locals so one request never mints two.
func ensureSID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(cookieSID).(string); ok {
		return sid
	}
	sid := c.Cookies(cookieSID)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     cookieSID,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	c.Locals(cookieSID, sid)
	return sid
}

// ensureDID is the long-lived device cookie naming the persistent scope.
func ensureDID(c *fiber.Ctx) string {
	if did, ok := c.Locals(cookieDID).(string); ok {
		return did
	}
	did := c.Cookies(cookieDID)
	if did == "" {
		did = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     cookieDID,
			Value:    did,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
			Expires:  time.Now().AddDate(1, 0, 0),
		})
	}
	c.Locals(cookieDID, did)
	return did
}

func (cl *Clients) Scopes(c *fiber.Ctx) services.Scopes {
	return services.Scopes{
		Local:   repos.NewPrefixed(cl.Durable, "device:"+ensureDID(c)+":"),
		Session: repos.NewPrefixed(cl.Sessions, "session:"+ensureSID(c)+":"),
	}
}

func (cl *Clients) State(c *fiber.Ctx) shell.State {
	return cl.Shell.Get(ensureSID(c))
}

func (cl *Clients) Update(c *fiber.Ctx, fn func(shell.State) shell.State) shell.State {
	return cl.Shell.Update(ensureSID(c), fn)
}

// Navigate applies a page change. When a guard sends the client elsewhere
// it returns false and the caller should redirect to pathOf(state).
func (cl *Clients) Navigate(c *fiber.Ctx, page domain.Page) (shell.State, bool) {
	s := cl.Update(c, func(s shell.State) shell.State { return shell.Navigate(s, page) })
	return s, s.Page == page
}

// pathOf is the URL of the page the state is on.
func pathOf(s shell.State) string {
	if s.Page == domain.PageProduct {
		return "/product/" + strconv.FormatInt(s.Selected.ID, 10)
	}
	return s.Page.Path()
}

// Attach loads the current user into the request and keeps the shell in
// sync with whatever the storage scopes hold.
func Attach(cl *Clients, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentUser(c.UserContext(), cl.Scopes(c))
		if err != nil {
			return err
		}
		s := cl.Update(c, func(s shell.State) shell.State { return shell.SetUser(s, u) })
		if u != nil {
			c.Locals("user", u)
			c.Locals("user_email", u.Email)
		}
		c.Locals("cart_count", shell.CartCount(s))
		return c.Next()
	}
}
