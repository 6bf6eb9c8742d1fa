package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	accesscontrol "github.com/aneilbaboo/accesscontrol-plus"
)

// Enforcer evaluates one authorization query against a set of roles.
// *accesscontrol.AccessControl satisfies it.
type Enforcer interface {
	CanAny(ctx context.Context, roles []string, scope string, rc accesscontrol.Context) (*accesscontrol.Permission, error)
}

// RolesFunc extracts the requesting subject's roles from the request. The
// default reads them from the request context via
// accesscontrol.RolesFromContext, where an authentication middleware is
// expected to have stored them.
type RolesFunc func(r *http.Request) []string

// ContextFunc assembles the evaluation context passed to condition tests and
// generators. The default returns nil.
type ContextFunc func(r *http.Request) accesscontrol.Context

// Option configures Require.
type Option func(*requireOptions)

type requireOptions struct {
	roles  RolesFunc
	reqCtx ContextFunc
	log    *slog.Logger
}

// WithRolesFunc overrides how roles are extracted from the request.
func WithRolesFunc(fn RolesFunc) Option {
	return func(o *requireOptions) {
		o.roles = fn
	}
}

// WithContextFunc sets how the evaluation context is assembled per request.
func WithContextFunc(fn ContextFunc) Option {
	return func(o *requireOptions) {
		o.reqCtx = fn
	}
}

// WithLogger routes decision logs to the given logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *requireOptions) {
		o.log = log
	}
}

// ForbiddenResponse is the JSON body returned when authorization is denied.
type ForbiddenResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Details *ForbiddenDetail `json:"details,omitempty"`
}

// ForbiddenDetail provides additional context for authorization denials,
// helping callers understand why access was denied.
type ForbiddenDetail struct {
	RequiredScope string   `json:"required_scope"`
	Roles         []string `json:"roles"`
	DeniedPaths   []string `json:"denied_paths,omitempty"`
}

// Require creates an HTTP middleware that authorizes every request against
// the given scope path ("resource:action" or "resource:action:field"). Roles
// come from the request context unless WithRolesFunc overrides the lookup;
// requests with no roles are rejected as unauthenticated.
//
// On grant the permission is stored in the request context and can be read
// with PermissionFromContext, giving handlers access to the field mask and
// constraint of the decision.
func Require(enforcer Enforcer, scopePath string, opts ...Option) func(http.Handler) http.Handler {
	if enforcer == nil {
		panic("middleware: enforcer cannot be nil")
	}

	options := &requireOptions{
		roles: func(r *http.Request) []string {
			roles, _ := accesscontrol.RolesFromContext(r.Context())
			return roles
		},
		reqCtx: func(*http.Request) accesscontrol.Context { return nil },
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles := options.roles(r)
			if len(roles) == 0 {
				writeJSONError(w, options.log, http.StatusUnauthorized, "authentication required")
				return
			}

			perm, err := enforcer.CanAny(r.Context(), roles, scopePath, options.reqCtx(r))
			if err != nil {
				options.log.ErrorContext(r.Context(), "authorization evaluation failed",
					"error", err,
					"scope", scopePath,
					"path", r.URL.Path,
					"method", r.Method,
					"roles", roles,
				)
				writeJSONError(w, options.log, http.StatusInternalServerError, "authorization evaluation failed")
				return
			}

			if !perm.Granted() {
				options.log.WarnContext(r.Context(), "authorization denied",
					"scope", scopePath,
					"path", r.URL.Path,
					"method", r.Method,
					"roles", roles,
					"denied", perm.Denied(),
				)
				writeForbidden(w, options.log, scopePath, roles, perm.Denied())
				return
			}

			options.log.DebugContext(r.Context(), "authorization permitted",
				"scope", scopePath,
				"path", r.URL.Path,
				"method", r.Method,
				"roles", roles,
				"granted_path", perm.GrantedPath(),
			)

			next.ServeHTTP(w, r.WithContext(ContextWithPermission(r.Context(), perm)))
		})
	}
}

// NoopMiddleware returns a middleware that performs no authorization checks.
// Use this when authorization is disabled in the configuration.
func NoopMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

// writeForbidden writes a 403 Forbidden JSON response carrying the denial
// paths, which identify exactly which rules rejected the request.
func writeForbidden(w http.ResponseWriter, log *slog.Logger, scope string, roles, denied []string) {
	resp := ForbiddenResponse{
		Error:   "forbidden",
		Message: "You do not have permission to perform this action.",
		Details: &ForbiddenDetail{
			RequiredScope: scope,
			Roles:         roles,
			DeniedPaths:   denied,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to encode forbidden response", "error", err)
	}
}

// writeJSONError writes a generic JSON error response with the given status code.
func writeJSONError(w http.ResponseWriter, log *slog.Logger, status int, message string) {
	resp := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("failed to encode error response", "error", err)
	}
}
