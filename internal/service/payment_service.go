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

// PaymentService handles the payment ledger of a project
type PaymentService struct {
	logger *zap.Logger
	db     *gorm.DB
}

func NewPaymentService(db *gorm.DB, logger *zap.Logger) *PaymentService {
	return &PaymentService{db: db, logger: logger}
}

// Add records a payment against the project. When the payment is linked to a
// milestone and this single payment's amount covers the milestone amount, the
// milestone is marked completed. The check is deliberately per-payment, not
// cumulative: two half payments against the same milestone leave it pending.
func (s *PaymentService) Add(ctx context.Context, projectID uuid.UUID, req *domain.AddPaymentRequest) (*domain.ProjectView, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
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

		var milestone *domain.Milestone
		if req.MilestoneID != nil {
			for i := range project.Milestones {
				if project.Milestones[i].ID == *req.MilestoneID {
					milestone = &project.Milestones[i]
					break
				}
			}
			if milestone == nil {
				return ErrMilestoneNotFound
			}
		}

		paymentDate := time.Now()
		if req.PaymentDate != nil {
			paymentDate = *req.PaymentDate
		}

		payment := domain.Payment{
			ProjectID:     project.ID,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
			MilestoneID:   req.MilestoneID,
			AddedBy:       user.UserID,
			PaymentDate:   paymentDate,
		}
		if err := tx.WithContext(ctx).Create(&payment).Error; err != nil {
			return fmt.Errorf("creating payment: %w", err)
		}
		project.Payments = append(project.Payments, payment)

		if milestone != nil && milestone.Status == domain.MilestoneStatusPending && payment.Amount >= milestone.Amount {
			milestone.Status = domain.MilestoneStatusCompleted
			if err := tx.WithContext(ctx).Model(&domain.Milestone{}).
				Where("id = ?", milestone.ID).
				Update("status", domain.MilestoneStatusCompleted).Error; err != nil {
				return fmt.Errorf("completing milestone: %w", err)
			}
		}

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment added",
		zap.String("project_id", projectID.String()),
		zap.Float64("amount", req.Amount))
	metrics.RecordLedgerMutation("payments", "add")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Update edits a payment in place. Milestone completion is not re-evaluated
// on update; only the original add can flip a milestone to completed.
func (s *PaymentService) Update(ctx context.Context, projectID, paymentID uuid.UUID, req *domain.UpdatePaymentRequest) (*domain.ProjectView, error) {
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

		payment := findPayment(project, paymentID)
		if payment == nil {
			return ErrPaymentNotFound
		}

		if req.Amount != nil {
			payment.Amount = *req.Amount
		}
		if req.PaymentMethod != nil {
			payment.PaymentMethod = *req.PaymentMethod
		}
		if req.Notes != nil {
			payment.Notes = *req.Notes
		}
		if req.PaymentDate != nil {
			payment.PaymentDate = *req.PaymentDate
		}

		if err := tx.WithContext(ctx).Save(payment).Error; err != nil {
			return fmt.Errorf("saving payment: %w", err)
		}

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordLedgerMutation("payments", "update")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

// Delete removes a payment. Milestones completed by the payment stay
// completed; deletion only affects the derived totals.
func (s *PaymentService) Delete(ctx context.Context, projectID, paymentID uuid.UUID) (*domain.ProjectView, error) {
	var project *domain.Project

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loadErr error
		project, loadErr = loadProjectLedgers(ctx, tx, projectID)
		if loadErr != nil {
			return loadErr
		}

		payment := findPayment(project, paymentID)
		if payment == nil {
			return ErrPaymentNotFound
		}

		if err := tx.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", paymentID).Error; err != nil {
			return fmt.Errorf("deleting payment: %w", err)
		}

		remaining := project.Payments[:0]
		for _, p := range project.Payments {
			if p.ID != paymentID {
				remaining = append(remaining, p)
			}
		}
		project.Payments = remaining

		RecomputeTotals(project)
		return persistTotals(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment deleted",
		zap.String("project_id", projectID.String()),
		zap.String("payment_id", paymentID.String()))
	metrics.RecordLedgerMutation("payments", "delete")

	view := mapper.ToProjectView(project, callerRole(ctx))
	return &view, nil
}

func findPayment(project *domain.Project, paymentID uuid.UUID) *domain.Payment {
	for i := range project.Payments {
		if project.Payments[i].ID == paymentID {
			return &project.Payments[i]
		}
	}
	return nil
}
