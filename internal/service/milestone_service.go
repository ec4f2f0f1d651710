package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/mapper"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/metrics"
)

// MilestoneService handles the milestone ledger of a project
type MilestoneService struct {
	logger *zap.Logger
	db     *gorm.DB
}

func NewMilestoneService(db *gorm.DB, logger *zap.Logger) *MilestoneService {
	return &MilestoneService{db: db, logger: logger}
}

// Add appends a milestone to the ledger. Order is assigned from the current
// ledger length and status starts pending. The recompute runs regardless of
// category; it only moves totalAmount on milestone projects, but keeps the
// derived fields consistent everywhere.
func (s *MilestoneService) Add(ctx context.Context, projectID uuid.UUID, req *domain.AddMilestoneRequest) (*domain.ProjectView, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		deliverables := req.Deliverables
		if deliverables == nil {
			deliverables = []string{}
		}

		milestone := domain.Milestone{
			ProjectID:    project.ID,
			Title:        req.Title,
			Amount:       req.Amount,
			DueDate:      req.DueDate,
			Deliverables: deliverables,
			Order:        len(project.Milestones),
			Status:       domain.MilestoneStatusPending,
		}
		if err := tx.WithContext(ctx).Create(&milestone).Error; err != nil {
			return fmt.Errorf("creating milestone: %w", err)
		}
		project.Milestones = append(project.Milestones, milestone)

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("milestone added",
		zap.String("project_id", projectID.String()),
		zap.Float64("amount", req.Amount))
	metrics.RecordLedgerMutation("milestones", "add")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Update edits a milestone in place, including manual status flips
func (s *MilestoneService) Update(ctx context.Context, projectID, milestoneID uuid.UUID, req *domain.UpdateMilestoneRequest) (*domain.ProjectView, error) {
	if req.Amount != nil && *req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		milestone := findMilestone(project, milestoneID)
		if milestone == nil {
			return ErrMilestoneNotFound
		}

		if req.Title != nil {
			milestone.Title = *req.Title
		}
		if req.Amount != nil {
			milestone.Amount = *req.Amount
		}
		if req.DueDate != nil {
			milestone.DueDate = req.DueDate
		}
		if req.Deliverables != nil {
			milestone.Deliverables = req.Deliverables
		}
		if req.Status != nil {
			milestone.Status = *req.Status
		}

		if err := tx.WithContext(ctx).Save(milestone).Error; err != nil {
			return fmt.Errorf("saving milestone: %w", err)
		}

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordLedgerMutation("milestones", "update")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Delete removes a milestone from the ledger. Later milestones keep their
// order values; ordering stays strictly increasing, just no longer dense.
func (s *MilestoneService) Delete(ctx context.Context, projectID, milestoneID uuid.UUID) (*domain.ProjectView, error) {
	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		milestone := findMilestone(project, milestoneID)
		if milestone == nil {
			return ErrMilestoneNotFound
		}

		if err := tx.WithContext(ctx).Delete(&domain.Milestone{}, "id = ?", milestoneID).Error; err != nil {
			return fmt.Errorf("deleting milestone: %w", err)
		}

		remaining := project.Milestones[:0]
		for _, m := range project.Milestones {
			if m.ID != milestoneID {
				remaining = append(remaining, m)
			}
		}
		project.Milestones = remaining

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("milestone deleted",
		zap.String("project_id", projectID.String()),
		zap.String("milestone_id", milestoneID.String()))
	metrics.RecordLedgerMutation("milestones", "delete")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

func findMilestone(project *domain.Project, milestoneID uuid.UUID) *domain.Milestone {
	for i := range project.Milestones {
		if project.Milestones[i].ID == milestoneID {
			return &project.Milestones[i]
		}
	}
	return nil
}
