package service

import "errors"

// Common service errors
var (
	// ErrUnauthorized is returned when user context is missing from the request
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrProjectNotFound is returned when a project id cannot be resolved
	ErrProjectNotFound = errors.New("project not found")

	// ErrPaymentNotFound is returned when a payment id cannot be resolved on the project
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrMilestoneNotFound is returned when a milestone id cannot be resolved on the project
	ErrMilestoneNotFound = errors.New("milestone not found")

	// ErrTimeEntryNotFound is returned when a time entry id cannot be resolved on the project
	ErrTimeEntryNotFound = errors.New("time entry not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrNotificationNotFound is returned when a notification does not exist
	// or belongs to another user
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidAmount is returned for non-positive ledger amounts
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidHours is returned for non-positive time entry hours
	ErrInvalidHours = errors.New("hours must be greater than zero")

	// ErrInvalidCategory is returned when category-specific pricing input is missing or malformed
	ErrInvalidCategory = errors.New("invalid category configuration")

	// ErrInvalidRole is returned when registering an account with an unknown role
	ErrInvalidRole = errors.New("invalid role")

	// ErrNotHourlyProject is returned when a time entry targets a non-hourly project
	ErrNotHourlyProject = errors.New("time entries are only allowed on hourly projects")

	// ErrProjectNotPickable is returned when a project is hidden from the pool
	// or not in a pickable status
	ErrProjectNotPickable = errors.New("project is not available for picking")

	// ErrProjectAlreadyOwned is returned when a pick loses the claim race
	ErrProjectAlreadyOwned = errors.New("project is already owned by a team lead")

	// ErrQuotaExceeded is returned when a pick would exceed the per-lead concurrency cap
	ErrQuotaExceeded = errors.New("concurrent project quota exceeded")

	// ErrNotProjectOwner is returned when release is attempted by a non-owning team lead
	ErrNotProjectOwner = errors.New("project is owned by another team lead")

	// ErrProjectTerminal is returned for lifecycle operations on completed/cancelled projects
	ErrProjectTerminal = errors.New("project is in a terminal status")

	// ErrNoTeamLead is returned when staffing employees on a project without a team lead
	ErrNoTeamLead = errors.New("project has no team lead assigned")

	// ErrNotTeamLead is returned when the assigned owner is not a team lead account
	ErrNotTeamLead = errors.New("user is not a team lead")

	// ErrEmailTaken is returned when registering an already-used email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials is returned on failed login
	ErrInvalidCredentials = errors.New("invalid email or password")
)
