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
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
)

// ProjectService handles project aggregate lifecycle and reads
type ProjectService struct {
	projects *repository.ProjectRepository
	logger   *zap.Logger
	db       *gorm.DB

	pickableStatuses []domain.ProjectStatus
}

func NewProjectService(projects *repository.ProjectRepository, db *gorm.DB, logger *zap.Logger, pickableStatuses []domain.ProjectStatus) *ProjectService {
	return &ProjectService{
		projects:         projects,
		db:               db,
		logger:           logger,
		pickableStatuses: pickableStatuses,
	}
}

// Create creates a project. The category is fixed at creation and the
// matching pricing input must be positive; the non-matching input is zeroed
// so a fixed project never carries an hourly rate and vice versa.
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectView, error) {
	if !req.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	project := &domain.Project{
		ProjectName:  req.ProjectName,
		ClientName:   req.ClientName,
		Description:  req.Description,
		Deadline:     req.Deadline,
		Category:     req.Category,
		Status:       domain.ProjectStatusPending,
		ClientStatus: domain.ClientStatusReview,
		Employees:    []string{},
	}

	switch req.Category {
	case domain.CategoryFixed:
		if req.FixedAmount <= 0 {
			return nil, ErrInvalidAmount
		}
		project.FixedAmount = req.FixedAmount
	case domain.CategoryHourly:
		if req.HourlyRate <= 0 {
			return nil, ErrInvalidAmount
		}
		project.HourlyRate = req.HourlyRate
	}

	project.VisibleToTeamLeads = true
	if req.VisibleToTeamLeads != nil {
		project.VisibleToTeamLeads = *req.VisibleToTeamLeads
	}

	RecomputeTotals(project)

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("category", string(project.Category)))

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// GetByID returns a single project through the visibility filter
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectView, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// List returns projects scoped by the caller's role: admins see everything,
// team leads see their own projects plus the visible unclaimed pool, and
// employees see the projects they are staffed on.
func (s *ProjectService) List(ctx context.Context) ([]domain.ProjectView, error) {
	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	var projects []domain.Project
	switch user.Role {
	case domain.RoleAdmin:
		projects, err = s.projects.ListAll(ctx)
	case domain.RoleTeamLead:
		projects, err = s.projects.ListForTeamLead(ctx, user.UserID, s.pickableStatuses)
	default:
		projects, err = s.projects.ListForEmployee(ctx, user.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return mapper.ToProjectViews(projects, user.Role), nil
}

// Update updates project metadata and pricing inputs. The category itself is
// immutable; pricing inputs are only accepted for the matching category, and
// derived totals are recomputed before persisting.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProjectRequest) (*domain.ProjectView, error) {
	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = s.loadForUpdate(ctx, tx, id)
		if loadErr != nil {
			return loadErr
		}

		project.ProjectName = req.ProjectName
		project.ClientName = req.ClientName
		project.Description = req.Description
		project.Deadline = req.Deadline

		if req.FixedAmount != nil {
			if project.Category != domain.CategoryFixed {
				return ErrInvalidCategory
			}
			if *req.FixedAmount <= 0 {
				return ErrInvalidAmount
			}
			project.FixedAmount = *req.FixedAmount
		}
		if req.HourlyRate != nil {
			if project.Category != domain.CategoryHourly {
				return ErrInvalidCategory
			}
			if *req.HourlyRate <= 0 {
				return ErrInvalidAmount
			}
			project.HourlyRate = *req.HourlyRate
		}
		if req.Status != "" {
			project.Status = req.Status
		}

		RecomputeTotals(project)

		if err := tx.WithContext(ctx).Save(project).Error; err != nil {
			return fmt.Errorf("saving project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// UpdateClientStatus sets the client's standing on the project
func (s *ProjectService) UpdateClientStatus(ctx context.Context, id uuid.UUID, status domain.ClientStatus) (*domain.ProjectView, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	project.ClientStatus = status
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// UpdateVisibility toggles whether the project shows up in the pick pool
func (s *ProjectService) UpdateVisibility(ctx context.Context, id uuid.UUID, visible bool) (*domain.ProjectView, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	project.VisibleToTeamLeads = visible
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Delete removes a project and its owned ledgers
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("loading project: %w", err)
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.logger.Info("project deleted", zap.String("project_id", id.String()))
	return nil
}

// Recalculate reruns the pricing recompute against the stored ledgers and
// persists the result. The recompute is idempotent, so this is safe to call
// at any time; it exists as an explicit admin repair for drifted totals.
func (s *ProjectService) Recalculate(ctx context.Context, id uuid.UUID) (*domain.ProjectView, error) {
	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = s.loadForUpdate(ctx, tx, id)
		if loadErr != nil {
			return loadErr
		}

		RecomputeTotals(project)
		return s.projects.UpdateTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project totals recalculated", zap.String("project_id", id.String()))

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// RecalculateAll reruns the recompute for every project, used by the nightly
// reconciliation job. Failures on individual projects are logged and skipped.
func (s *ProjectService) RecalculateAll(ctx context.Context) (int, error) {
	ids, err := s.projects.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing project ids: %w", err)
	}

	refreshed := 0
	for _, id := range ids {
		if _, err := s.Recalculate(ctx, id); err != nil {
			s.logger.Warn("totals refresh failed",
				zap.String("project_id", id.String()),
				zap.Error(err))
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// loadForUpdate loads a project with its ledgers inside the transaction
func (s *ProjectService) loadForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error) {
	return loadProjectLedgers(ctx, tx, id)
}
