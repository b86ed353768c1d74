// Package shell holds the cross-page state of one storefront client and the
// intents that move it from one state to the next. Intents are pure: they
// take a State and return the next one.
package shell

import (
	"slices"

	"audiotech/internal/domain"
)

type State struct {
	Page     domain.Page
	Selected domain.Product
	Cart     []domain.CartItem
	User     *domain.User
	Loading  bool
	Query    string
	// ReturnTo is the page the login form was entered from.
	ReturnTo domain.Page
}

// New is the state of a client that has just arrived.
func New(featured domain.Product) State {
	return State{Page: domain.PageHome, Selected: featured}
}

// clone detaches the slices and pointers of s so intents never mutate their input.
func (s State) clone() State {
	s.Cart = slices.Clone(s.Cart)
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Navigate moves to page unless a guard redirects:
// checkout needs a non-empty cart, profile needs a user.
func Navigate(s State, page domain.Page) State {
	s = s.clone()
	switch page {
	case domain.PageCheckout:
		if len(s.Cart) == 0 {
			return s
		}
	case domain.PageProfile:
		if s.User == nil {
			page = domain.PageLogin
		}
	case domain.PageHome, domain.PageTech, domain.PageSupport:
		s.Query = ""
	}
	if page == domain.PageLogin && s.Page != domain.PageLogin {
		s.ReturnTo = s.Page
	}
	s.Page = page
	return s
}

func Search(s State, q string) State {
	s = s.clone()
	s.Query = q
	s.Page = domain.PageCatalog
	return s
}

func ClearSearch(s State) State {
	s = s.clone()
	s.Query = ""
	return s
}

func SelectProduct(s State, p domain.Product) State {
	s = Navigate(s, domain.PageProduct)
	s.Selected = p
	return s
}

func SetLoading(s State, loading bool) State {
	s = s.clone()
	s.Loading = loading
	return s
}

// SetUser syncs the state with the user found in storage.
func SetUser(s State, u *domain.User) State {
	s = s.clone()
	if u == nil {
		s.User = nil
		return s
	}
	cp := *u
	s.User = &cp
	return s
}

// LoginSucceeded routes admins to the editor, returns to checkout when
// login was entered from there with items in the cart, and goes home otherwise.
func LoginSucceeded(s State, u domain.User) State {
	s = SetUser(s, &u)
	switch {
	case u.IsAdmin():
		s.Page = domain.PageAdmin
	case s.ReturnTo == domain.PageCheckout && len(s.Cart) > 0:
		s.Page = domain.PageCheckout
	default:
		s.Page = domain.PageHome
	}
	s.ReturnTo = ""
	return s
}

func LoggedOut(s State) State {
	s = SetUser(s, nil)
	return Navigate(s, domain.PageLogin)
}

func ProfileUpdated(s State, u domain.User) State {
	return SetUser(s, &u)
}

// Registered sends a freshly registered visitor to the login form.
func Registered(s State) State {
	return Navigate(s, domain.PageLogin)
}
