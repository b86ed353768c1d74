package handlers

import (
	"fmt"
	"html/template"
	"strings"

	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

// NewViews loads the page templates from dir with the helpers they use.
func NewViews(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("money", money)
	engine.AddFunc("avatar", avatarURL)
	return engine
}

func money(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", x)
	case *float64:
		if x == nil {
			return ""
		}
		return fmt.Sprintf("$%.2f", *x)
	case decimal.Decimal:
		return "$" + x.StringFixed(2)
	default:
		return fmt.Sprint(v)
	}
}

// avatarURL lets stored image data URLs through the URL sanitizer.
func avatarURL(s string) template.URL {
	if strings.HasPrefix(s, "data:image/") {
		return template.URL(s)
	}
	return ""
}
