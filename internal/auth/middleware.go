package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

// Middleware authenticates requests and enforces role requirements
type Middleware struct {
	issuer *TokenIssuer
	logger *zap.Logger
}

func NewMiddleware(issuer *TokenIssuer, logger *zap.Logger) *Middleware {
	return &Middleware{issuer: issuer, logger: logger}
}

// Authenticate validates the Bearer token and attaches the user to the
// request context. Requests without a valid token get a 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondUnauthorized(w, "invalid authorization header")
			return
		}

		claims, err := m.issuer.Parse(parts[1])
		if err != nil {
			m.logger.Debug("token rejected", zap.Error(err))
			respondUnauthorized(w, "invalid or expired token")
			return
		}

		user := &UserContext{
			UserID: claims.UserID,
			Name:   claims.Name,
			Email:  claims.Email,
			Role:   claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

// RequireRole allows only the listed roles through
func (m *Middleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				respondUnauthorized(w, "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondForbidden(w)
		})
	}
}

// RequireAdmin allows only admins through
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(domain.RoleAdmin)(next)
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(domain.APIError{
		Success: false,
		Kind:    domain.ErrorKindUnauthorized,
		Message: message,
	})
}

func respondForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(domain.APIError{
		Success: false,
		Kind:    domain.ErrorKindForbidden,
		Message: "insufficient permissions",
	})
}
