package ui

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	custommw "github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/navigation"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/orders"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pages"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/productunits"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/rbac"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/session"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/layouts"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/warranty"
)

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Orders        orders.Service
	PCBuilds      pcbuilds.Service
	ProductUnits  productunits.Service
	Subcategories subcategories.Service
	Warranty      warranty.Service
	// CSRFHeader is the header htmx requests carry the CSRF token in.
	CSRFHeader string
	Clock      func() time.Time
}

// Handlers exposes HTTP handlers for admin UI pages and fragments.
type Handlers struct {
	orders        orders.Service
	pcbuilds      pcbuilds.Service
	productUnits  productunits.Service
	subcategories subcategories.Service
	warranty      warranty.Service
	csrfHeader    string
	now           func() time.Time
}

// NewHandlers wires the UI handler set. Missing services fall back to the seeded in-memory
// implementations.
func NewHandlers(deps Dependencies) *Handlers {
	h := &Handlers{
		orders:        deps.Orders,
		pcbuilds:      deps.PCBuilds,
		productUnits:  deps.ProductUnits,
		subcategories: deps.Subcategories,
		warranty:      deps.Warranty,
		csrfHeader:    deps.CSRFHeader,
		now:           deps.Clock,
	}
	if h.orders == nil {
		h.orders = orders.NewStaticService()
	}
	if h.pcbuilds == nil {
		h.pcbuilds = pcbuilds.NewStaticService()
	}
	if h.productUnits == nil {
		h.productUnits = productunits.NewStaticService()
	}
	if h.subcategories == nil {
		h.subcategories = subcategories.NewStaticService()
	}
	if h.warranty == nil {
		h.warranty = warranty.NewStaticService()
	}
	if h.csrfHeader == "" {
		h.csrfHeader = "X-CSRF-Token"
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Page renders def inside the admin layout.
func (h *Handlers) Page(def pages.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var flashes []session.Flash
		if sess, ok := custommw.SessionFromContext(ctx); ok && sess != nil {
			flashes = sess.PopFlashes()
		}
		data := layouts.AdminData{
			Title:      def.Title,
			Menu:       navigation.BuildMenu(custommw.MetaFromContext(ctx).BasePath),
			Flashes:    flashes,
			CSRFHeader: h.csrfHeader,
		}
		templ.Handler(layouts.Admin(data, def.Render(r)), templ.WithErrorHandler(renderError(def.Key))).ServeHTTP(w, r)
	}
}

func renderError(page string) func(*http.Request, error) http.Handler {
	return func(r *http.Request, err error) http.Handler {
		observability.FromContext(r.Context()).Error("page render failed", zap.String("page", page), zap.Error(err))
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Không thể hiển thị trang. Vui lòng thử lại sau.", http.StatusInternalServerError)
		})
	}
}

// Home redirects to the first page the signed-in user may open.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	user, ok := custommw.UserFromContext(r.Context())
	if !ok || user == nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	base := custommw.MetaFromContext(r.Context()).BasePath
	for _, def := range pages.All() {
		if rbac.HasCapability(user.Roles, def.Capability) {
			http.Redirect(w, r, joinBasePath(base, def.Path()), http.StatusFound)
			return
		}
	}
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
