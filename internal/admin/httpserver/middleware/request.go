package middleware

import (
	"context"
	"net/http"
	"strings"
)

const defaultEnvironment = "Development"

type requestMetaKey struct{}

// RequestMeta is what the layout and the fragment handlers need to know about
// the request being served.
type RequestMeta struct {
	// BasePath is the mount point of the dashboard, "/" or "/admin" style.
	BasePath string
	// Path is the raw URL path; the sidebar compares it with menu patterns.
	Path string
	// Environment labels the deployment in the topbar badge.
	Environment string
	// HTMX is set when htmx sent the request (HX-Request: true).
	HTMX bool
}

// RequestMetadata stores a RequestMeta in the context of every request.
// An empty environment falls back to "Development".
func RequestMetadata(basePath, environment string) func(http.Handler) http.Handler {
	base := normaliseBase(basePath)
	env := strings.TrimSpace(environment)
	if env == "" {
		env = defaultEnvironment
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			meta := RequestMeta{
				BasePath:    base,
				Path:        r.URL.Path,
				Environment: env,
				HTMX:        strings.EqualFold(r.Header.Get("HX-Request"), "true"),
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestMetaKey{}, meta)))
		})
	}
}

// MetaFromContext returns the stored RequestMeta. Contexts that did not pass
// through RequestMetadata get base path "/" and the default environment.
func MetaFromContext(ctx context.Context) RequestMeta {
	if ctx != nil {
		if meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
			return meta
		}
	}
	return RequestMeta{BasePath: "/", Environment: defaultEnvironment}
}

// IsHTMXRequest reports whether htmx initiated the current request.
func IsHTMXRequest(ctx context.Context) bool {
	return MetaFromContext(ctx).HTMX
}

// RequireHTMX answers 404 to direct navigation so fragment routes are only
// reachable from the pages that swap them in.
func RequireHTMX() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "HX-Request")
			if !IsHTMXRequest(r.Context()) {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func normaliseBase(base string) string {
	return "/" + strings.Trim(strings.TrimSpace(base), "/")
}
