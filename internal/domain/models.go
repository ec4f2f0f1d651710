package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID so models work on backends without a uuid default
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Role represents the role of a user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "teamlead"
	RoleEmployee Role = "employee"
)

// IsValid checks if the Role is a valid enum value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeamLead, RoleEmployee:
		return true
	}
	return false
}

// ProjectCategory represents the pricing strategy of a project.
// Set at creation and immutable thereafter.
type ProjectCategory string

const (
	CategoryFixed     ProjectCategory = "fixed"
	CategoryHourly    ProjectCategory = "hourly"
	CategoryMilestone ProjectCategory = "milestone"
)

// IsValid checks if the ProjectCategory is a valid enum value
func (c ProjectCategory) IsValid() bool {
	switch c {
	case CategoryFixed, CategoryHourly, CategoryMilestone:
		return true
	}
	return false
}

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusActive     ProjectStatus = "active"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusActive, ProjectStatusInProgress,
		ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further lifecycle transitions are allowed
func (s ProjectStatus) IsTerminal() bool {
	return s == ProjectStatusCompleted || s == ProjectStatusCancelled
}

// ClientStatus represents the client's standing on a project
type ClientStatus string

const (
	ClientStatusAccept ClientStatus = "accept"
	ClientStatusReject ClientStatus = "reject"
	ClientStatusReview ClientStatus = "review"
	ClientStatusAway   ClientStatus = "away"
)

// IsValid checks if the ClientStatus is a valid enum value
func (cs ClientStatus) IsValid() bool {
	switch cs {
	case ClientStatusAccept, ClientStatusReject, ClientStatusReview, ClientStatusAway:
		return true
	}
	return false
}

// MilestoneStatus represents the status of a milestone
type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
)

// Project is the billing aggregate root. It owns three sub-ledgers
// (payments, milestones, time entries) and carries derived totals that are
// recomputed from the ledgers after every mutation, never hand-edited.
type Project struct {
	BaseModel
	ProjectName string          `gorm:"type:varchar(200);not null;index;column:project_name"`
	ClientName  string          `gorm:"type:varchar(200);not null;column:client_name"`
	Description string          `gorm:"type:text"`
	Deadline    *time.Time      `gorm:"type:date"`
	Category    ProjectCategory `gorm:"type:varchar(20);not null;index"`

	// Category-specific pricing inputs
	FixedAmount float64 `gorm:"type:decimal(15,2);not null;default:0;column:fixed_amount"`
	HourlyRate  float64 `gorm:"type:decimal(15,2);not null;default:0;column:hourly_rate"`

	// Derived fields, maintained by the pricing recompute
	ActualHours   float64 `gorm:"type:decimal(10,2);not null;default:0;column:actual_hours"`
	TotalAmount   float64 `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	PaidAmount    float64 `gorm:"type:decimal(15,2);not null;default:0;column:paid_amount"`
	PendingAmount float64 `gorm:"type:decimal(15,2);not null;default:0;column:pending_amount"`

	Status       ProjectStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ClientStatus ClientStatus  `gorm:"type:varchar(20);not null;default:'review';column:client_status"`

	// Assignment state. At most one team lead owns the project at a time;
	// employees must be empty whenever the team lead is unset.
	TeamLeadID         *uuid.UUID `gorm:"type:uuid;index;column:team_lead_id"`
	TeamLead           *User      `gorm:"foreignKey:TeamLeadID"`
	Employees          []string   `gorm:"serializer:json;column:employees"`
	VisibleToTeamLeads bool       `gorm:"not null;default:true;column:visible_to_team_leads"`

	Milestones  []Milestone `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	TimeEntries []TimeEntry `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Payments    []Payment   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// Payment is an entry in a project's payment ledger
type Payment struct {
	BaseModel
	ProjectID     uuid.UUID  `gorm:"type:uuid;not null;index;column:project_id"`
	Amount        float64    `gorm:"type:decimal(15,2);not null"`
	PaymentMethod string     `gorm:"type:varchar(50);not null;column:payment_method"`
	Notes         string     `gorm:"type:text"`
	MilestoneID   *uuid.UUID `gorm:"type:uuid;column:milestone_id"`
	AddedBy       uuid.UUID  `gorm:"type:uuid;column:added_by"`
	PaymentDate   time.Time  `gorm:"not null;column:payment_date"`
}

// Milestone is an entry in a project's milestone ledger
type Milestone struct {
	BaseModel
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index;column:project_id"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Amount       float64         `gorm:"type:decimal(15,2);not null"`
	DueDate      *time.Time      `gorm:"type:date;column:due_date"`
	Deliverables []string        `gorm:"serializer:json"`
	Order        int             `gorm:"not null;default:0;column:order_index"`
	Status       MilestoneStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TimeEntry is an entry in a project's time ledger. Only hourly-category
// projects may carry time entries.
type TimeEntry struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index;column:project_id"`
	Date        time.Time `gorm:"not null"`
	Hours       float64   `gorm:"type:decimal(10,2);not null"`
	Description string    `gorm:"type:text"`
	TaskType    string    `gorm:"type:varchar(50);column:task_type"`
	AddedBy     uuid.UUID `gorm:"type:uuid;column:added_by"`
}

// User represents an account in the system
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(200);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	Role         Role       `gorm:"type:varchar(20);not null;index"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeProjectAssigned NotificationType = "project_assigned"
	NotificationTypeProjectReleased NotificationType = "project_released"
)

// Notification represents a user notification
type Notification struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"type:varchar(50);not null"`
	Title      string    `gorm:"type:varchar(200);not null"`
	Message    string    `gorm:"type:varchar(500);not null"`
	Read       bool      `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	EntityID   *uuid.UUID `gorm:"type:uuid"`
	EntityType string     `gorm:"type:varchar(50)"`
}
