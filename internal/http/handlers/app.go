package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "audiotech/internal/log"
)

type AppOptions struct {
	Views fiber.Views
	// AccessLog receives the request log lines; nil keeps stdout.
	AccessLog io.Writer
	// requests per minute per client IP
	GlobalLimit int
	// login attempts per 10 minutes per client IP
	LoginLimit int
	// search requests per minute per client IP
	SearchLimit int
	BodyLimit   int
}

func (o AppOptions) withDefaults() AppOptions {
	if o.GlobalLimit == 0 {
		o.GlobalLimit = 60
	}
	if o.LoginLimit == 0 {
		o.LoginLimit = 5
	}
	if o.SearchLimit == 0 {
		o.SearchLimit = 20
	}
	if o.BodyLimit == 0 {
		// a 2 MiB avatar plus multipart framing
		o.BodyLimit = 4 << 20
	}
	return o
}

func errorHandler(c *fiber.Ctx, err error) error {
	applog.Error(c, "server.error", err, nil)
	// Avoid leaking internals; best-effort render
	if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

// NewApp builds the storefront with its middleware chain and routes.
func NewApp(d *Deps, opt AppOptions) *fiber.App {
	opt = opt.withDefaults()
	app := fiber.New(fiber.Config{
		Views:        opt.Views,
		ErrorHandler: errorHandler,
		BodyLimit:    opt.BodyLimit,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if opt.AccessLog != nil {
		app.Use(logger.New(logger.Config{Output: opt.AccessLog}))
	} else {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        opt.GlobalLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/healthz" || p == "/metrics"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return renderStatus(c, fiber.StatusForbidden, "notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API does not touch client scopes
	api := app.Group("/api/v1")
	api.Get("/products", d.CatalogHandler.API)

	app.Use(Attach(d.Clients, d.Auth))

	// Storefront
	app.Get("/", d.CatalogHandler.Home)
	app.Get("/catalog", limiter.New(limiter.Config{
		Max:        opt.SearchLimit,
		Expiration: time.Minute,
		Next:       func(c *fiber.Ctx) bool { return c.Query("q") == "" },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many searches. Please slow down.")
		},
	}), d.CatalogHandler.List)
	app.Get("/product", func(c *fiber.Ctx) error {
		return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": "This item is no longer available"})
	})
	app.Get("/product/:id", d.CatalogHandler.Detail)
	app.Get("/support", d.PageHandler.Support)
	app.Get("/tech", d.PageHandler.Tech)

	// Cart & checkout
	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Get("/checkout", d.OrderHandler.Checkout)
	app.Post("/checkout", d.OrderHandler.Place)

	// Auth routes (login throttled)
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        opt.LoginLimit,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return renderStatus(c, fiber.StatusTooManyRequests, "login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Get("/register", d.AuthHandler.RegisterForm)
	app.Post("/register", d.AuthHandler.Register)
	app.Post("/logout", d.AuthHandler.Logout)

	app.Get("/profile", d.ProfileHandler.View)
	app.Post("/profile", RequireUser(d.Clients, d.Auth), d.ProfileHandler.Update)

	// Admin
	admin := app.Group("/admin", RequireAdmin(d.Clients, d.Auth))
	admin.Get("/", d.AdminHandler.Dashboard)
	admin.Post("/products", d.AdminHandler.AddProduct)
	admin.Post("/products/:id/delete", d.AdminHandler.DeleteProduct)

	app.Use(func(c *fiber.Ctx) error {
		return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}
