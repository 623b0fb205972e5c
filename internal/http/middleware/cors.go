package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowHeaders = "Content-Type, X-Session-Id"
	corsAllowMethods = "GET, POST, PUT, OPTIONS"
	corsMaxAge       = "600"
)

// corsPolicy is an origin allowlist. A "*" entry admits every origin; the
// matched origin is always echoed back instead of the wildcard so cached
// responses stay scoped per origin.
type corsPolicy struct {
	allowAll bool
	origins  map[string]bool
}

func newCORSPolicy(allowedOrigins []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]bool)}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			p.allowAll = true
		default:
			p.origins[origin] = true
		}
	}
	return p
}

func (p corsPolicy) admits(origin string) bool {
	return p.allowAll || p.origins[origin]
}

// CORS applies the allowlist and short-circuits preflight requests with 204.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && policy.admits(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Max-Age", corsMaxAge)
			}

			if isPreflight(r, origin) {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request, origin string) bool {
	return r.Method == http.MethodOptions &&
		origin != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}
