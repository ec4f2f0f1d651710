package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/mapper"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/metrics"
)

// TimeEntryService handles the time ledger of a project. Only hourly
// projects accept time entries; every mutation recomputes the derived
// totals no matter who performs it.
type TimeEntryService struct {
	logger *zap.Logger
	db     *gorm.DB
}

func NewTimeEntryService(db *gorm.DB, logger *zap.Logger) *TimeEntryService {
	return &TimeEntryService{db: db, logger: logger}
}

// Add records hours against an hourly project
func (s *TimeEntryService) Add(ctx context.Context, projectID uuid.UUID, req *domain.AddTimeEntryRequest) (*domain.ProjectView, error) {
	if req.Hours <= 0 {
		return nil, ErrInvalidHours
	}

	user, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	var project *domain.Project

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		if project.Category != domain.CategoryHourly {
			return ErrNotHourlyProject
		}

		date := time.Now()
		if req.Date != nil {
			date = *req.Date
		}

		entry := domain.TimeEntry{
			ProjectID:   project.ID,
			Date:        date,
			Hours:       req.Hours,
			Description: req.Description,
			TaskType:    req.TaskType,
			AddedBy:     user.UserID,
		}
		if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
			return fmt.Errorf("creating time entry: %w", err)
		}
		project.TimeEntries = append(project.TimeEntries, entry)

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("time entry added",
		zap.String("project_id", projectID.String()),
		zap.Float64("hours", req.Hours))
	metrics.RecordLedgerMutation("time_entries", "add")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Update edits a time entry in place
func (s *TimeEntryService) Update(ctx context.Context, projectID, entryID uuid.UUID, req *domain.UpdateTimeEntryRequest) (*domain.ProjectView, error) {
	if req.Hours != nil && *req.Hours <= 0 {
		return nil, ErrInvalidHours
	}

	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		entry := findTimeEntry(project, entryID)
		if entry == nil {
			return ErrTimeEntryNotFound
		}

		if req.Hours != nil {
			entry.Hours = *req.Hours
		}
		if req.Description != nil {
			entry.Description = *req.Description
		}
		if req.Date != nil {
			entry.Date = *req.Date
		}
		if req.TaskType != nil {
			entry.TaskType = *req.TaskType
		}

		if err := tx.WithContext(ctx).Save(entry).Error; err != nil {
			return fmt.Errorf("saving time entry: %w", err)
		}

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordLedgerMutation("time_entries", "update")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Delete removes a time entry and recomputes totals without it
func (s *TimeEntryService) Delete(ctx context.Context, projectID, entryID uuid.UUID) (*domain.ProjectView, error) {
	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		entry := findTimeEntry(project, entryID)
		if entry == nil {
			return ErrTimeEntryNotFound
		}

		if err := tx.WithContext(ctx).Delete(&domain.TimeEntry{}, "id = ?", entryID).Error; err != nil {
			return fmt.Errorf("deleting time entry: %w", err)
		}

		remaining := project.TimeEntries[:0]
		for _, e := range project.TimeEntries {
			if e.ID != entryID {
				remaining = append(remaining, e)
			}
		}
		project.TimeEntries = remaining

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("time entry deleted",
		zap.String("project_id", projectID.String()),
		zap.String("entry_id", entryID.String()))
	metrics.RecordLedgerMutation("time_entries", "delete")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

func findTimeEntry(project *domain.Project, entryID uuid.UUID) *domain.TimeEntry {
	for i := range project.TimeEntries {
		if project.TimeEntries[i].ID == entryID {
			return &project.TimeEntries[i]
		}
	}
	return nil
}
