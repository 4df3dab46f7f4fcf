package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/service"
)

type contextKeyAuth string

// userIDKey is the context key for the authenticated user's ID.
const userIDKey contextKeyAuth = "user_id"

// AccessPolicy classifies a route as public or protected.
type AccessPolicy int

const (
	// PolicyProtected requires a valid bearer token. It is the default for
	// any route without an explicit entry: unknown routes fail closed.
	PolicyProtected AccessPolicy = iota
	// PolicyPublic admits requests with no credentials.
	PolicyPublic
)

// PolicyTable maps routes to their access policy. Entries are registered at
// route-registration time; there is no runtime discovery.
type PolicyTable struct {
	mu       sync.RWMutex
	policies map[string]AccessPolicy
}

// NewPolicyTable creates an empty policy table.
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{policies: make(map[string]AccessPolicy)}
}

// Set records the policy for a method and path.
func (t *PolicyTable) Set(method, path string, policy AccessPolicy) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.policies[method+" "+path] = policy
}

// Resolve returns the policy for a method and path. Routes without an entry
// resolve to PolicyProtected.
func (t *PolicyTable) Resolve(method, path string) AccessPolicy {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p, ok := t.policies[method+" "+path]; ok {
		return p
	}
	return PolicyProtected
}

// Guard returns an HTTP middleware enforcing the route access policy. Public
// routes pass through with no identity. Protected routes require a bearer
// token in the Authorization header; on success the token's subject is
// attached to the request context, and on any failure the request ends with
// a 401 before reaching the handler.
func Guard(tokens *service.TokenService, policies *PolicyTable) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if policies.Resolve(r.Method, r.URL.Path) == PolicyPublic {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, "missing credentials")
				return
			}

			userID, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user's ID from the context. Returns an
// empty string on public routes and outside a request.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserID returns a context carrying the given user ID. Used by handler
// tests to simulate an authenticated request.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func writeAuthError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, message)
}

// writeError mirrors the handler package's error envelope so rejections from
// the middleware chain look the same as rejections from the handlers.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{
		Error: model.ErrorDetail{
			Code:      code,
			Message:   message,
			Timestamp: time.Now().UTC(),
		},
	})
}
