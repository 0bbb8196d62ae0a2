package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/ui"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/productunits"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/storage"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

// CSRFCookie and CSRFHeader are the CSRF names used by NewServer.
const (
	CSRFCookie = "csrf_token"
	CSRFHeader = "X-CSRF-Token"
)

// Now is the fixed clock of SeededServices.
var Now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithAuthenticator overrides the authenticator used by the admin server.
func WithAuthenticator(auth middleware.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = auth
	}
}

// WithBasePath sets a custom base path for the admin routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithServices replaces the domain services behind the handlers.
func WithServices(deps ui.Dependencies) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Services = deps
	}
}

// SeededServices returns store-backed services over fresh seeded memory repositories, all
// reading the fixed clock Now.
func SeededServices() ui.Dependencies {
	clock := func() time.Time { return Now }
	var units *productunits.StoreService
	cats := subcategories.NewService(storage.NewMemory(subcategories.Seed(Now)...),
		subcategories.WithClock(clock),
		subcategories.WithUsageCounter(func(ctx context.Context, id string) (int, error) {
			return units.CountInSubcategory(ctx, id)
		}),
	)
	units = productunits.NewService(storage.NewMemory(productunits.Seed(Now)...),
		productunits.WithClock(clock),
		productunits.WithSubcategoryLookup(productunits.CatalogLookup(cats)),
	)
	return ui.Dependencies{
		Orders:        orders.NewService(storage.NewMemory(orders.Seed(Now)...), orders.WithClock(clock)),
		PCBuilds:      pcbuilds.NewService(storage.NewMemory(pcbuilds.Seed(Now)...), pcbuilds.WithClock(clock)),
		ProductUnits:  units,
		Subcategories: cats,
		Warranty:      warranty.NewService(storage.NewMemory(warranty.Seed(Now)...), warranty.WithClock(clock)),
		Clock:         clock,
	}
}

// NewServer constructs an httptest server running the admin HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:        ":0",
		BasePath:       "/",
		Environment:    "Test",
		CSRFCookieName: CSRFCookie,
		CSRFHeaderName: CSRFHeader,
		Authenticator:  middleware.DefaultAuthenticator(),
		Services:       SeededServices(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// Client drives a test server as one signed-in staff member. It keeps cookies, does not follow
// redirects and sends the CSRF token on unsafe requests.
type Client struct {
	t     testing.TB
	base  *url.URL
	http  *http.Client
	token string
}

// NewClient returns a client authenticating with token. An empty token sends no credentials.
func NewClient(t testing.TB, ts *httptest.Server, token string) *Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base, err := url.Parse(ts.URL)
	require.NoError(t, err)
	return &Client{
		t:    t,
		base: base,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		token: token,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Get issues a full-page GET.
func (c *Client) Get(path string) Response {
	c.t.Helper()
	return c.do(http.MethodGet, path, nil, false)
}

// Fragment issues a GET marked as an htmx request.
func (c *Client) Fragment(path string) Response {
	c.t.Helper()
	return c.do(http.MethodGet, path, nil, true)
}

// Post submits form as an htmx request. A CSRF cookie is obtained first when the client has
// none.
func (c *Client) Post(path string, form url.Values) Response {
	c.t.Helper()
	if c.csrfToken() == "" {
		c.Get("/login")
	}
	return c.do(http.MethodPost, path, form, true)
}

func (c *Client) csrfToken() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == CSRFCookie {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) do(method, path string, form url.Values, htmx bool) Response {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, c.base.String()+path, body)
	require.NoError(c.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	if method != http.MethodGet {
		req.Header.Set(CSRFHeader, c.csrfToken())
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: data}
}

// ParseHTML loads a response body into goquery for selector assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err, "parse html")
	return doc
}
