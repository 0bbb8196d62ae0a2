package middleware

import "net/http"

// NoStore marks responses as non-cacheable so admin data never lands in shared caches.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("Cache-Control", "no-store, max-age=0")
			headers.Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}
