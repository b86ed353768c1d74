package handlers

import (
	"audiotech/internal/config"
	"audiotech/internal/repos"
	"audiotech/internal/services"
	"audiotech/internal/shell"
)

type Deps struct {
	Clients *Clients
	Auth    *services.AuthService

	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	AdminHandler   *AdminHandler
	PageHandler    *PageHandler
}

// NewDeps wires services and handlers over the durable store (shared
// catalog, credentials, remembered sessions) and the session store.
func NewDeps(durable, sessions repos.Store, cfg config.Config) *Deps {
	lat := services.Scaled(cfg.Latency)

	catalogSvc := services.NewCatalogService(repos.NewProductRepo(durable), lat)
	authSvc := services.NewAuthService(repos.NewUserRepo(durable), cfg.AdminEmail, lat)
	orderSvc := services.NewOrderService(lat)

	cl := &Clients{
		Durable:  durable,
		Sessions: sessions,
		Shell:    shell.NewRegistry(services.Featured(), cfg.SessionIdle),
	}

	return &Deps{
		Clients:        cl,
		Auth:           authSvc,
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc, Clients: cl},
		CartHandler:    &CartHandler{Catalog: catalogSvc, Clients: cl},
		OrderHandler:   &OrderHandler{Orders: orderSvc, Clients: cl},
		AuthHandler:    &AuthHandler{Auth: authSvc, Clients: cl},
		ProfileHandler: &ProfileHandler{Auth: authSvc, Clients: cl},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc, Clients: cl},
		PageHandler:    &PageHandler{Clients: cl},
	}
}
