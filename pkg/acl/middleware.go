package acl

import "net/http"

// MiddlewareOption configures Require.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	forbidden http.Handler
}

// WithForbiddenHandler replaces the default 403 response.
func WithForbiddenHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.forbidden = h
		}
	}
}

// Require returns a middleware that lets a request through only when the role
// in its context (see WithRole) may perform action on resource.
// Requests without a role, or with a role that is not registered, are
// rejected instead of panicking: the role comes from request data.
func Require(a *ACL, action, resource string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		forbidden: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.AvailableFromContext(r.Context(), action, resource) {
				cfg.forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
