package domain

import (
	"time"

	"github.com/google/uuid"
)

// Response is the envelope every API response is wrapped in
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ProjectView is the outward representation of a project. Financial fields
// are pointers so the visibility filter can strip them for non-admin callers.
type ProjectView struct {
	ID          uuid.UUID       `json:"id"`
	ProjectName string          `json:"projectName"`
	ClientName  string          `json:"clientName"`
	Description string          `json:"description,omitempty"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	Category    ProjectCategory `json:"category"`

	FixedAmount   *float64 `json:"fixedAmount,omitempty"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`
	ActualHours   float64  `json:"actualHours"`
	TotalAmount   *float64 `json:"totalAmount,omitempty"`
	PaidAmount    *float64 `json:"paidAmount,omitempty"`
	PendingAmount *float64 `json:"pendingAmount,omitempty"`

	Status             ProjectStatus `json:"status"`
	ClientStatus       ClientStatus  `json:"clientStatus"`
	TeamLeadID         *uuid.UUID    `json:"teamLeadId,omitempty"`
	Employees          []string      `json:"employees"`
	VisibleToTeamLeads bool          `json:"visibleToTeamLeads"`

	Milestones  []MilestoneView `json:"milestones"`
	TimeEntries []TimeEntryView `json:"timeEntries"`
	Payments    []PaymentView   `json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentView is the outward representation of a payment ledger entry
type PaymentView struct {
	ID            uuid.UUID  `json:"id"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         string     `json:"notes,omitempty"`
	MilestoneID   *uuid.UUID `json:"milestoneId,omitempty"`
	AddedBy       uuid.UUID  `json:"addedBy"`
	PaymentDate   time.Time  `json:"paymentDate"`
}

// MilestoneView is the outward representation of a milestone ledger entry
type MilestoneView struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Amount       float64         `json:"amount"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	Deliverables []string        `json:"deliverables"`
	Order        int             `json:"order"`
	Status       MilestoneStatus `json:"status"`
}

// TimeEntryView is the outward representation of a time ledger entry
type TimeEntryView struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description,omitempty"`
	TaskType    string    `json:"taskType,omitempty"`
	AddedBy     uuid.UUID `json:"addedBy"`
}

// UserDTO is the outward representation of a user (never carries the hash)
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NotificationDTO is the outward representation of a notification
type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// UnreadCountDTO carries the unread notification count
type UnreadCountDTO struct {
	Count int `json:"count"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// CreateProjectRequest is the request body for creating a project.
// Category is immutable after creation; the matching pricing input
// (fixedAmount or hourlyRate) must be provided for fixed/hourly projects.
type CreateProjectRequest struct {
	ProjectName        string          `json:"projectName" validate:"required,max=200"`
	ClientName         string          `json:"clientName" validate:"required,max=200"`
	Description        string          `json:"description" validate:"max=5000"`
	Deadline           *time.Time      `json:"deadline"`
	Category           ProjectCategory `json:"category" validate:"required,oneof=fixed hourly milestone"`
	FixedAmount        float64         `json:"fixedAmount" validate:"gte=0"`
	HourlyRate         float64         `json:"hourlyRate" validate:"gte=0"`
	VisibleToTeamLeads *bool           `json:"visibleToTeamLeads"`
}

// UpdateProjectRequest is the request body for updating project metadata.
// Category and derived totals are not updatable.
type UpdateProjectRequest struct {
	ProjectName string        `json:"projectName" validate:"required,max=200"`
	ClientName  string        `json:"clientName" validate:"required,max=200"`
	Description string        `json:"description" validate:"max=5000"`
	Deadline    *time.Time    `json:"deadline"`
	FixedAmount *float64      `json:"fixedAmount" validate:"omitempty,gte=0"`
	HourlyRate  *float64      `json:"hourlyRate" validate:"omitempty,gte=0"`
	Status      ProjectStatus `json:"status" validate:"omitempty,oneof=pending active in-progress on-hold completed cancelled"`
}

// UpdateClientStatusRequest is the request body for updating client status
type UpdateClientStatusRequest struct {
	ClientStatus ClientStatus `json:"clientStatus" validate:"required,oneof=accept reject review away"`
}

// UpdateVisibilityRequest toggles whether unclaimed projects appear in the pick pool
type UpdateVisibilityRequest struct {
	VisibleToTeamLeads bool `json:"visibleToTeamLeads"`
}

// AddPaymentRequest is the request body for adding a payment
type AddPaymentRequest struct {
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	PaymentMethod string     `json:"paymentMethod" validate:"required,max=50"`
	Notes         string     `json:"notes" validate:"max=2000"`
	MilestoneID   *uuid.UUID `json:"milestoneId"`
	PaymentDate   *time.Time `json:"paymentDate"`
}

// UpdatePaymentRequest is the request body for patching a payment
type UpdatePaymentRequest struct {
	Amount        *float64   `json:"amount" validate:"omitempty,gt=0"`
	PaymentMethod *string    `json:"paymentMethod" validate:"omitempty,max=50"`
	Notes         *string    `json:"notes" validate:"omitempty,max=2000"`
	PaymentDate   *time.Time `json:"paymentDate"`
}

// AddMilestoneRequest is the request body for adding a milestone
type AddMilestoneRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	DueDate      *time.Time `json:"dueDate"`
	Deliverables []string   `json:"deliverables"`
}

// UpdateMilestoneRequest is the request body for patching a milestone
type UpdateMilestoneRequest struct {
	Title        *string          `json:"title" validate:"omitempty,max=200"`
	Amount       *float64         `json:"amount" validate:"omitempty,gt=0"`
	DueDate      *time.Time       `json:"dueDate"`
	Deliverables []string         `json:"deliverables"`
	Status       *MilestoneStatus `json:"status" validate:"omitempty,oneof=pending completed"`
}

// AddTimeEntryRequest is the request body for adding a time entry
type AddTimeEntryRequest struct {
	Hours       float64    `json:"hours" validate:"required,gt=0"`
	Description string     `json:"description" validate:"max=2000"`
	Date        *time.Time `json:"date"`
	TaskType    string     `json:"taskType" validate:"max=50"`
}

// UpdateTimeEntryRequest is the request body for patching a time entry
type UpdateTimeEntryRequest struct {
	Hours       *float64   `json:"hours" validate:"omitempty,gt=0"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Date        *time.Time `json:"date"`
	TaskType    *string    `json:"taskType" validate:"omitempty,max=50"`
}

// ReleaseRequest is the optional request body for releasing a project
type ReleaseRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// AssignTeamLeadRequest is the admin override for setting the team lead.
// A null teamLeadId clears the assignment (and the staffed employees with it).
type AssignTeamLeadRequest struct {
	TeamLeadID *uuid.UUID `json:"teamLeadId"`
}

// AssignEmployeesRequest is the admin override for staffing employees
type AssignEmployeesRequest struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required"`
}

// LoginRequest is the request body for authentication
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterRequest is the admin-only request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=admin teamlead employee"`
}
