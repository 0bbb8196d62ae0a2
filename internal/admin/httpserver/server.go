package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	custommw "github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/ui"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pages"
	appsession "github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
	"github.com/Hiuth/nexora-admin-sub001/public"
)

// Config holds runtime options for the admin HTTP server.
type Config struct {
	Address     string
	BasePath    string
	LoginPath   string
	Environment string

	Authenticator custommw.Authenticator
	// Sessions persists staff sessions. Nil uses a cookie manager with keys generated at
	// start-up, so sessions do not survive a restart.
	Sessions custommw.SessionStore
	Logger   *zap.Logger

	CSRFCookieName   string
	CSRFCookiePath   string
	CSRFCookieSecure bool
	CSRFHeaderName   string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Services backs the page and fragment handlers. Nil services use seeded in-memory data.
	Services ui.Dependencies
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(logger))
	router.Use(observability.Trace())
	router.Use(observability.RequestLogger())
	router.Use(observability.Recoverer())
	router.Use(chimw.Timeout(60 * time.Second))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	sessions := cfg.Sessions
	if sessions == nil {
		sessions, err = appsession.NewManager(appsession.Config{
			HashKey:      securecookie.GenerateRandomKey(32),
			BlockKey:     securecookie.GenerateRandomKey(32),
			CookieSecure: cfg.CSRFCookieSecure,
		})
		if err != nil {
			return nil, fmt.Errorf("httpserver: session manager: %w", err)
		}
	}

	basePath := normalizeBasePath(cfg.BasePath)
	loginPath := resolveLoginPath(basePath, cfg.LoginPath)

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = custommw.DefaultAuthenticator()
	}

	services := cfg.Services
	if services.CSRFHeader == "" {
		services.CSRFHeader = cfg.CSRFHeaderName
	}

	mountAdminRoutes(router, basePath, routeOptions{
		Authenticator: authenticator,
		LoginPath:     loginPath,
		Environment:   cfg.Environment,
		Sessions:      sessions,
		CSRF: custommw.CSRFConfig{
			CookieName: cfg.CSRFCookieName,
			CookiePath: firstNonEmpty(cfg.CSRFCookiePath, basePath),
			HeaderName: cfg.CSRFHeaderName,
			Secure:     cfg.CSRFCookieSecure,
		},
		Handlers: ui.NewHandlers(services),
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

type routeOptions struct {
	Authenticator custommw.Authenticator
	LoginPath     string
	Environment   string
	Sessions      custommw.SessionStore
	CSRF          custommw.CSRFConfig
	Handlers      *ui.Handlers
}

func mountAdminRoutes(router chi.Router, base string, opts routeOptions) {
	login := newLoginHandlers(opts.Authenticator, base, opts.LoginPath)
	h := opts.Handlers

	router.Route(base, func(r chi.Router) {
		r.Use(custommw.RequestMetadata(base, opts.Environment))
		r.Use(custommw.NoStore())
		r.Use(custommw.Session(opts.Sessions))
		r.Use(custommw.CSRF(opts.CSRF))

		r.Get(relativeTo(base, opts.LoginPath), login.Form)
		r.Post(relativeTo(base, opts.LoginPath), login.Submit)
		r.Post("/logout", login.Logout)

		r.Group(func(r chi.Router) {
			r.Use(custommw.Auth(opts.Authenticator, opts.LoginPath))
			r.Get("/", h.Home)
			for _, def := range pages.All() {
				mountPage(r, def, h)
			}
		})
	})
}

// mountPage registers the page routes, its table fragment and the table's mutations behind
// the page capability.
func mountPage(router chi.Router, def pages.Definition, h *ui.Handlers) {
	router.Group(func(r chi.Router) {
		r.Use(custommw.RequireCapability(def.Capability))
		for _, path := range def.Paths {
			r.Get(path, h.Page(def))
		}

		switch def.Key {
		case "create-order":
			RegisterFragment(r, "/orders/create/table", h.CreateOrderTable)
			r.Post("/orders/create", h.CreateOrder)
			r.Post("/orders/{orderID}/confirm", h.ConfirmOrder)
			r.Post("/orders/{orderID}/cancel", h.CancelOrder)
		case "order-preparation":
			RegisterFragment(r, "/order-preparation/table", h.PreparationTable)
			r.Post("/order-preparation/{orderID}/advance", h.AdvanceOrder)
		case "pc-builds":
			RegisterFragment(r, "/pc-builds/table", h.PCBuildsTable)
			r.Post("/pc-builds", h.CreatePCBuild)
			r.Post("/pc-builds/{buildID}/components", h.SetPCBuildComponent)
			r.Post("/pc-builds/{buildID}/components/{slot}/delete", h.RemovePCBuildComponent)
			r.Post("/pc-builds/{buildID}/publish", h.PublishPCBuild)
			r.Post("/pc-builds/{buildID}/unpublish", h.UnpublishPCBuild)
			r.Post("/pc-builds/{buildID}/delete", h.DeletePCBuild)
		case "product-units":
			RegisterFragment(r, "/product-units/table", h.ProductUnitsTable)
			r.Post("/product-units", h.RegisterProductUnit)
			r.Post("/product-units/{unitID}/status", h.UpdateProductUnitStatus)
		case "subcategories":
			RegisterFragment(r, "/subcategories/table", h.SubcategoriesTable)
			r.Post("/subcategories", h.CreateSubcategory)
			r.Post("/subcategories/{subcategoryID}/toggle", h.ToggleSubcategory)
			r.Post("/subcategories/{subcategoryID}/delete", h.DeleteSubcategory)
		case "warranty":
			RegisterFragment(r, "/warranty/table", h.WarrantyTable)
			r.Post("/warranty", h.RegisterWarranty)
			r.Post("/warranty/{warrantyID}/claims", h.OpenWarrantyClaim)
			r.Post("/warranty/{warrantyID}/claims/{claimID}/resolve", h.ResolveWarrantyClaim)
			r.Post("/warranty/{warrantyID}/void", h.VoidWarranty)
		}
	})
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

func resolveLoginPath(base string, override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	if base == "/" {
		return "/login"
	}
	return base + "/login"
}

// relativeTo strips base from an absolute route so it can be registered on the base router.
func relativeTo(base, path string) string {
	if base == "/" {
		return path
	}
	rel := strings.TrimPrefix(path, base)
	if rel == "" || !strings.HasPrefix(rel, "/") {
		return "/login"
	}
	return rel
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}
