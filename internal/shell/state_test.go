package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiotech/internal/domain"
	"audiotech/internal/shell"
)

var (
	featured = domain.Product{ID: 1, Name: "Sonic Master X1", Price: 1299}
	buds     = domain.Product{ID: 101, Name: "Buds", Price: 199}
	amp      = domain.Product{ID: 102, Name: "Amp", Price: 250}
)

func TestNew_StartsHomeWithFeatured(t *testing.T) {
	s := shell.New(featured)
	assert.Equal(t, domain.PageHome, s.Page)
	assert.Equal(t, featured.ID, s.Selected.ID)
	assert.Empty(t, s.Cart)
	assert.Nil(t, s.User)
}

func TestNavigate_CheckoutNeedsItems(t *testing.T) {
	s := shell.Navigate(shell.New(featured), domain.PageCart)
	next := shell.Navigate(s, domain.PageCheckout)
	assert.Equal(t, domain.PageCart, next.Page)

	s = shell.AddToCart(s, buds, 1)
	next = shell.Navigate(s, domain.PageCheckout)
	assert.Equal(t, domain.PageCheckout, next.Page)
}

func TestNavigate_ProfileWithoutUserGoesToLogin(t *testing.T) {
	s := shell.Navigate(shell.New(featured), domain.PageProfile)
	assert.Equal(t, domain.PageLogin, s.Page)
	assert.Equal(t, domain.PageHome, s.ReturnTo)

	u := domain.User{Email: "a@b.co", Role: domain.RoleUser}
	s = shell.SetUser(shell.New(featured), &u)
	s = shell.Navigate(s, domain.PageProfile)
	assert.Equal(t, domain.PageProfile, s.Page)
}

func TestNavigate_ClearsSearchOnStaticPages(t *testing.T) {
	for _, p := range []domain.Page{domain.PageHome, domain.PageTech, domain.PageSupport} {
		s := shell.Search(shell.New(featured), "amp")
		require.Equal(t, domain.PageCatalog, s.Page)
		s = shell.Navigate(s, p)
		assert.Empty(t, s.Query, "page %s", p)
	}
	s := shell.Search(shell.New(featured), "amp")
	s = shell.Navigate(s, domain.PageCart)
	assert.Equal(t, "amp", s.Query)
	assert.Empty(t, shell.ClearSearch(s).Query)
}

func TestSelectProduct(t *testing.T) {
	s := shell.SelectProduct(shell.New(featured), amp)
	assert.Equal(t, domain.PageProduct, s.Page)
	assert.Equal(t, amp.ID, s.Selected.ID)
}

func TestLoginSucceeded_Routing(t *testing.T) {
	user := domain.User{Email: "u@x.io", Role: domain.RoleUser}
	admin := domain.User{Email: "admin@admin.com", Role: domain.RoleAdmin}

	// admin always lands on the editor
	s := shell.Navigate(shell.New(featured), domain.PageLogin)
	assert.Equal(t, domain.PageAdmin, shell.LoginSucceeded(s, admin).Page)

	// from checkout with items, back to checkout
	s = shell.AddToCart(shell.New(featured), buds, 1)
	s = shell.Navigate(s, domain.PageCheckout)
	s = shell.Navigate(s, domain.PageLogin)
	got := shell.LoginSucceeded(s, user)
	assert.Equal(t, domain.PageCheckout, got.Page)
	require.NotNil(t, got.User)
	assert.Equal(t, "u@x.io", got.User.Email)
	assert.Empty(t, got.ReturnTo)

	// anywhere else, home
	s = shell.Navigate(shell.New(featured), domain.PageCatalog)
	s = shell.Navigate(s, domain.PageLogin)
	assert.Equal(t, domain.PageHome, shell.LoginSucceeded(s, user).Page)
}

func TestLoggedOut(t *testing.T) {
	u := domain.User{Email: "u@x.io"}
	s := shell.LoginSucceeded(shell.New(featured), u)
	s = shell.LoggedOut(s)
	assert.Nil(t, s.User)
	assert.Equal(t, domain.PageLogin, s.Page)
}

func TestIntentsDoNotMutateInput(t *testing.T) {
	u := domain.User{Email: "u@x.io", Name: "Old"}
	s := shell.AddToCart(shell.SetUser(shell.New(featured), &u), buds, 1)

	next := shell.AddToCart(s, buds, 4)
	next.User.Name = "New"
	assert.Equal(t, 1, s.Cart[0].Quantity)
	assert.Equal(t, "Old", s.User.Name)
	assert.Equal(t, "Old", u.Name)
}

func TestSetLoading(t *testing.T) {
	s := shell.SetLoading(shell.New(featured), true)
	assert.True(t, s.Loading)
	assert.False(t, shell.SetLoading(s, false).Loading)
}
