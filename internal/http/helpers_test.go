package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"audiotech/internal/config"
	"audiotech/internal/http/handlers"
	applog "audiotech/internal/log"
	"audiotech/internal/repos"
)

type testEnv struct {
	app     *fiber.App
	deps    *handlers.Deps
	durable repos.Store
}

// newTestApp wires the full app over an in-memory sqlite store with no
// artificial latency. opt tweaks the limits.
func newTestApp(t *testing.T, opt handlers.AppOptions) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return newTestAppOn(t, repos.NewKVRepo(db), opt)
}

func newTestAppOn(t *testing.T, durable repos.Store, opt handlers.AppOptions) *testEnv {
	t.Helper()
	cfg := config.Config{AdminEmail: "admin@admin.com"}
	deps := handlers.NewDeps(durable, repos.NewMemoryStore(), cfg)
	deps.Auth.HashCost = bcrypt.MinCost

	opt.Views = handlers.NewViews("../../web/templates")
	opt.AccessLog = io.Discard
	if opt.GlobalLimit == 0 {
		opt.GlobalLimit = 1000
	}
	if opt.LoginLimit == 0 {
		opt.LoginLimit = 100
	}
	if opt.SearchLimit == 0 {
		opt.SearchLimit = 100
	}
	return &testEnv{app: handlers.NewApp(deps, opt), deps: deps, durable: durable}
}

// browser carries cookies between requests and fills in the csrf field.
type browser struct {
	t   *testing.T
	app *fiber.App
	jar map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	b := &browser{t: t, app: app, jar: map[string]string{}}
	b.get("/login") // csrf, did and sid cookies
	if b.jar["csrf_"] == "" {
		t.Fatal("csrf token missing")
	}
	return b
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for k, v := range b.jar {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 {
			delete(b.jar, c.Name)
			continue
		}
		b.jar[c.Name] = c.Value
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	b.t.Helper()
	return b.do(httptest.NewRequest("GET", path, nil))
}

func (b *browser) post(path string, form url.Values) *http.Response {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", b.jar["csrf_"])
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// newSession drops the browser-session cookie, as closing the browser would.
func (b *browser) newSession() {
	delete(b.jar, "sid")
}

func (b *browser) register(first, last, email, pass string) *http.Response {
	b.t.Helper()
	return b.post("/register", url.Values{
		"firstName": {first}, "lastName": {last}, "email": {email},
		"password": {pass}, "confirmPassword": {pass},
	})
}

func (b *browser) login(email, pass string, remember bool) *http.Response {
	b.t.Helper()
	form := url.Values{"email": {email}, "password": {pass}}
	if remember {
		form.Set("remember", "on")
	}
	return b.post("/login", form)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected %d, got %d", want, resp.StatusCode)
	}
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect to %s, got %d", location, resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	User   string         `json:"user"`
	ReqID  string         `json:"req_id"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
