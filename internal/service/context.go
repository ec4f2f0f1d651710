package service

import (
	"context"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

// caller extracts the authenticated user from the context
func caller(ctx context.Context) (*auth.UserContext, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// callerRole returns the caller's role, defaulting to the least privileged
// role when no user is attached. The visibility filter treats an unknown
// caller as an employee.
func callerRole(ctx context.Context) domain.Role {
	if user, ok := auth.FromContext(ctx); ok {
		return user.Role
	}
	return domain.RoleEmployee
}
