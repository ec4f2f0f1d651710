package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/mapper"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/metrics"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
)

// AssignmentService handles the project assignment lifecycle: team leads
// picking from the visible pool, releasing what they own, and admin overrides
// that bypass the pick preconditions.
type AssignmentService struct {
	projects      *repository.ProjectRepository
	users         *repository.UserRepository
	notifications *NotificationService
	logger        *zap.Logger
	db            *gorm.DB

	maxConcurrent    int
	pickableStatuses []domain.ProjectStatus
}

func NewAssignmentService(
	projects *repository.ProjectRepository,
	users *repository.UserRepository,
	notifications *NotificationService,
	db *gorm.DB,
	logger *zap.Logger,
	maxConcurrent int,
	pickableStatuses []domain.ProjectStatus,
) *AssignmentService {
	return &AssignmentService{
		projects:         projects,
		users:            users,
		notifications:    notifications,
		db:               db,
		logger:           logger,
		maxConcurrent:    maxConcurrent,
		pickableStatuses: pickableStatuses,
	}
}

// Pick claims an unclaimed project for the calling team lead. The quota is
// checked first, then the claim runs as a single conditional update keyed on
// the team lead column being empty, so concurrent picks of the same project
// resolve to exactly one winner. A pending project moves to in-progress on a
// successful claim.
func (s *AssignmentService) Pick(ctx context.Context, projectID uuid.UUID) (*domain.ProjectView, error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.projects.CountByTeamLeadInStatuses(ctx, user.UserID, s.pickableStatuses)
	if err != nil {
		return nil, fmt.Errorf("counting active projects: %w", err)
	}
	if count >= int64(s.maxConcurrent) {
		metrics.RecordPickDecision("quota_exceeded")
		return nil, ErrQuotaExceeded
	}

	claimed, err := s.projects.ClaimForTeamLead(ctx, projectID, user.UserID, s.pickableStatuses)
	if err != nil {
		return nil, fmt.Errorf("claiming project: %w", err)
	}
	if !claimed {
		metrics.RecordPickDecision("lost_claim")
		return nil, s.classifyFailedClaim(ctx, projectID)
	}
	metrics.RecordPickDecision("claimed")

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("reloading project: %w", err)
	}

	s.logger.Info("project picked",
		zap.String("project_id", projectID.String()),
		zap.String("team_lead_id", user.UserID.String()))

	s.notifications.NotifyProjectAssigned(ctx, user.UserID, project)

	view := mapper.ToProjectView(project, user.Role)
	return &view, nil
}

// classifyFailedClaim explains why the conditional update matched nothing
func (s *AssignmentService) classifyFailedClaim(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("loading project: %w", err)
	}
	if project.TeamLeadID != nil {
		return ErrProjectAlreadyOwned
	}
	return ErrProjectNotPickable
}

// Release hands an owned project back to the pool. Only the owning team lead
// may release, and terminal projects stay with their lead for the record.
// The staffing is cleared entirely and the project returns to pending.
func (s *AssignmentService) Release(ctx context.Context, projectID uuid.UUID, reason string) (*domain.ProjectView, error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	if project.TeamLeadID == nil || *project.TeamLeadID != user.UserID {
		return nil, ErrNotProjectOwner
	}
	if project.Status.IsTerminal() {
		return nil, ErrProjectTerminal
	}

	project.TeamLeadID = nil
	project.TeamLead = nil
	project.Employees = []string{}
	project.Status = domain.ProjectStatusPending

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	s.logger.Info("project released",
		zap.String("project_id", projectID.String()),
		zap.String("team_lead_id", user.UserID.String()),
		zap.String("reason", reason))

	s.notifications.NotifyProjectReleased(ctx, project, user.Name, reason)

	view := mapper.ToProjectView(project, user.Role)
	return &view, nil
}

// AssignTeamLead is the admin override for project ownership. It bypasses
// the pick preconditions and the quota cap. A nil lead clears the assignment
// together with the staffed employees.
func (s *AssignmentService) AssignTeamLead(ctx context.Context, projectID uuid.UUID, leadID *uuid.UUID) (*domain.ProjectView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	if leadID == nil {
		project.TeamLeadID = nil
		project.TeamLead = nil
		project.Employees = []string{}
	} else {
		lead, err := s.users.GetByID(ctx, *leadID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("loading user: %w", err)
		}
		if lead.Role != domain.RoleTeamLead {
			return nil, ErrNotTeamLead
		}
		project.TeamLeadID = leadID
		project.TeamLead = nil
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	s.logger.Info("team lead assigned",
		zap.String("project_id", projectID.String()),
		zap.Any("team_lead_id", leadID))

	if leadID != nil {
		s.notifications.NotifyProjectAssigned(ctx, *leadID, project)
	}

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// AssignEmployees is the admin override for staffing. Employees can only be
// staffed on a project that has a team lead; clearing the lead always clears
// the staffing with it.
func (s *AssignmentService) AssignEmployees(ctx context.Context, projectID uuid.UUID, employeeIDs []string) (*domain.ProjectView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	if project.TeamLeadID == nil {
		return nil, ErrNoTeamLead
	}

	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	project.Employees = employeeIDs

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	s.logger.Info("employees assigned",
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(employeeIDs)))

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}
