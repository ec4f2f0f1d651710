package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

type contextKey string

const userContextKey contextKey = "userContext"

// UserContext holds the authenticated user's identity for the request
type UserContext struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   domain.Role
}

// IsAdmin reports whether the user carries the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// WithUserContext returns a new context carrying the user
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts the user from the context, if present
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
