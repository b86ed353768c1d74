package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"audiotech/internal/domain"
	"audiotech/internal/http/handlers"
)

func listProducts(t *testing.T, b *browser) []domain.Product {
	t.Helper()
	var products []domain.Product
	if err := json.NewDecoder(b.get("/api/v1/products").Body).Decode(&products); err != nil {
		t.Fatal(err)
	}
	return products
}

func TestAdminGuardRequiresAdmin(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{})

	anon := newBrowser(t, env.app)
	expectRedirect(t, anon.get("/admin"), "/login")

	user := newBrowser(t, env.app)
	user.register("Ada", "Lovelace", "ada@example.com", "secret1")
	user.login("ada@example.com", "secret1", false)
	var resp *http.Response
	entries := captureLogs(t, func() {
		resp = user.get("/admin")
	})
	expectStatus(t, resp, http.StatusForbidden)
	if _, ok := findLog(entries, "access.denied.admin"); !ok {
		t.Fatal("expected access.denied.admin log")
	}
	expectStatus(t, user.post("/admin/products", url.Values{"name": {"X"}, "price": {"10"}}), http.StatusForbidden)
	expectStatus(t, user.post("/admin/products/101/delete", nil), http.StatusForbidden)
	if got := len(listProducts(t, user)); got != 4 {
		t.Fatalf("catalog changed by non-admin: %d products", got)
	}
}

func TestAdminAddAndDeleteProduct(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{})
	b := newBrowser(t, env.app)
	b.login("admin@admin.com", "", false)

	var resp *http.Response
	entries := captureLogs(t, func() {
		resp = b.post("/admin/products", url.Values{
			"name": {"Bass Cube"}, "category": {"Speakers"}, "price": {"99.5"},
			"description": {"Small and loud"},
		})
	})
	expectRedirect(t, resp, "/admin")
	e, ok := findLog(entries, "admin.products.add")
	if !ok || e.Level != "audit" {
		t.Fatalf("expected admin.products.add audit, got %+v", e)
	}

	products := listProducts(t, b)
	if len(products) != 5 {
		t.Fatalf("expected 5 products, got %d", len(products))
	}
	added := products[0]
	if added.Name != "Bass Cube" || added.Price != 99.5 || !added.IsNew || added.Image == "" {
		t.Fatalf("unexpected stored product %+v", added)
	}
	if added.Rating == nil || *added.Rating != 5 || added.Reviews == nil || *added.Reviews != 0 {
		t.Fatalf("defaults missing: %+v", added)
	}
	if added.ID <= 104 {
		t.Fatalf("id should be time derived, got %d", added.ID)
	}

	page := body(t, b.get("/admin"))
	if !strings.Contains(page, "Bass Cube") {
		t.Fatal("editor does not list the new product")
	}

	expectRedirect(t, b.post("/admin/products/"+strconv.FormatInt(added.ID, 10)+"/delete", nil), "/admin")
	expectRedirect(t, b.post("/admin/products/424242/delete", nil), "/admin")
	products = listProducts(t, b)
	if len(products) != 4 || products[0].ID != 101 {
		t.Fatalf("delete failed: %+v", products)
	}
}

func TestAdminAddProductValidation(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{})
	b := newBrowser(t, env.app)
	b.login("admin@admin.com", "", false)

	expectStatus(t, b.post("/admin/products", url.Values{"name": {""}, "price": {"10"}}), http.StatusBadRequest)
	expectStatus(t, b.post("/admin/products", url.Values{"name": {"X"}, "price": {"0"}}), http.StatusBadRequest)
	expectStatus(t, b.post("/admin/products", url.Values{"name": {"X"}, "price": {"abc"}}), http.StatusBadRequest)
	expectStatus(t, b.post("/admin/products", url.Values{"name": {"X"}, "price": {"NaN"}}), http.StatusBadRequest)
	expectStatus(t, b.post("/admin/products", url.Values{"name": {"X"}, "price": {"Inf"}}), http.StatusBadRequest)
	expectStatus(t, b.post("/admin/products/abc/delete", nil), http.StatusBadRequest)
	if got := len(listProducts(t, b)); got != 4 {
		t.Fatalf("invalid input changed the catalog: %d", got)
	}
}

func TestCatalogSharedAcrossBrowsers(t *testing.T) {
	env := newTestApp(t, handlers.AppOptions{})
	admin := newBrowser(t, env.app)
	admin.login("admin@admin.com", "", false)
	admin.post("/admin/products", url.Values{"name": {"Bass Cube"}, "price": {"10"}})

	visitor := newBrowser(t, env.app)
	if page := body(t, visitor.get("/catalog")); !strings.Contains(page, "Bass Cube") {
		t.Fatal("new product not visible to other browsers")
	}
}
