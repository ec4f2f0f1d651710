package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

// loadProjectLedgers loads a project with all three ledgers on the given
// handle. Ledger mutations run this inside a transaction so the recompute
// sees a consistent snapshot.
func loadProjectLedgers(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := tx.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("TimeEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, created_at ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, created_at ASC")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return &project, nil
}

// persistTotals writes the recomputed derived columns on the same handle
func persistTotals(ctx context.Context, tx *gorm.DB, project *domain.Project) error {
	return tx.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"actual_hours":   project.ActualHours,
			"total_amount":   project.TotalAmount,
			"paid_amount":    project.PaidAmount,
			"pending_amount": project.PendingAmount,
		}).Error
}
