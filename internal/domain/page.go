package domain

type Page string

const (
	PageHome     Page = "home"
	PageCatalog  Page = "catalog"
	PageProduct  Page = "product"
	PageCart     Page = "cart"
	PageCheckout Page = "checkout"
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageSupport  Page = "support"
	PageAdmin    Page = "admin"
	PageProfile  Page = "profile"
	PageTech     Page = "tech"
)

var pagePaths = map[Page]string{
	PageHome:     "/",
	PageCatalog:  "/catalog",
	PageProduct:  "/product",
	PageCart:     "/cart",
	PageCheckout: "/checkout",
	PageLogin:    "/login",
	PageRegister: "/register",
	PageSupport:  "/support",
	PageAdmin:    "/admin",
	PageProfile:  "/profile",
	PageTech:     "/tech",
}

// Path returns the route serving the page. Unknown pages map to home.
func (p Page) Path() string {
	if path, ok := pagePaths[p]; ok {
		return path
	}
	return "/"
}
