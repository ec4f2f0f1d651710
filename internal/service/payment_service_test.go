package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/testutil"
)

func addMilestone(t *testing.T, db *gorm.DB, projectID uuid.UUID, title string, amount float64, order int) *domain.Milestone {
	t.Helper()
	m := &domain.Milestone{
		ProjectID:    projectID,
		Title:        title,
		Amount:       amount,
		Deliverables: []string{},
		Order:        order,
		Status:       domain.MilestoneStatusPending,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestPaymentService_Add(t *testing.T) {
	t.Run("payment reduces pending amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Fixed Site", domain.CategoryFixed, 150)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        100,
			PaymentMethod: "bank",
		})
		require.NoError(t, err)

		require.NotNil(t, view.PaidAmount)
		require.NotNil(t, view.PendingAmount)
		assert.Equal(t, float64(100), *view.PaidAmount)
		assert.Equal(t, float64(50), *view.PendingAmount)
	})

	t.Run("covering payment completes the linked milestone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Milestone Site", domain.CategoryMilestone, 0)
		first := addMilestone(t, db, project.ID, "Design", 200, 0)
		addMilestone(t, db, project.ID, "Build", 300, 1)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        200,
			PaymentMethod: "bank",
			MilestoneID:   &first.ID,
		})
		require.NoError(t, err)

		require.Len(t, view.Milestones, 2)
		assert.Equal(t, domain.MilestoneStatusCompleted, view.Milestones[0].Status)
		assert.Equal(t, domain.MilestoneStatusPending, view.Milestones[1].Status)
		assert.Equal(t, float64(200), *view.PaidAmount)
		assert.Equal(t, float64(300), *view.PendingAmount)
	})

	t.Run("milestone completion is per payment not cumulative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Milestone Site", domain.CategoryMilestone, 0)
		milestone := addMilestone(t, db, project.ID, "Design", 200, 0)

		_, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        100,
			PaymentMethod: "bank",
			MilestoneID:   &milestone.ID,
		})
		require.NoError(t, err)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        100,
			PaymentMethod: "bank",
			MilestoneID:   &milestone.ID,
		})
		require.NoError(t, err)

		// 200 paid in total, but no single payment covered the milestone
		assert.Equal(t, domain.MilestoneStatusPending, view.Milestones[0].Status)
		assert.Equal(t, float64(200), *view.PaidAmount)
	})

	t.Run("non positive amount is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Fixed Site", domain.CategoryFixed, 100)

		_, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        0,
			PaymentMethod: "bank",
		})
		assert.ErrorIs(t, err, service.ErrInvalidAmount)

		_, err = svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        -10,
			PaymentMethod: "bank",
		})
		assert.ErrorIs(t, err, service.ErrInvalidAmount)
	})

	t.Run("unknown project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())

		_, err := svc.Add(adminContext(), uuid.New(), &domain.AddPaymentRequest{
			Amount:        100,
			PaymentMethod: "bank",
		})
		assert.ErrorIs(t, err, service.ErrProjectNotFound)
	})

	t.Run("unknown linked milestone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Fixed Site", domain.CategoryFixed, 100)
		missing := uuid.New()

		_, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        100,
			PaymentMethod: "bank",
			MilestoneID:   &missing,
		})
		assert.ErrorIs(t, err, service.ErrMilestoneNotFound)
	})
}

func TestPaymentService_Update(t *testing.T) {
	t.Run("update recomputes totals but leaves milestones alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Milestone Site", domain.CategoryMilestone, 0)
		milestone := addMilestone(t, db, project.ID, "Design", 200, 0)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        100,
			PaymentMethod: "bank",
			MilestoneID:   &milestone.ID,
		})
		require.NoError(t, err)
		require.Len(t, view.Payments, 1)
		paymentID := view.Payments[0].ID

		// raising the amount past the milestone threshold must not complete it
		newAmount := float64(250)
		view, err = svc.Update(adminContext(), project.ID, paymentID, &domain.UpdatePaymentRequest{
			Amount: &newAmount,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.MilestoneStatusPending, view.Milestones[0].Status)
		assert.Equal(t, float64(250), *view.PaidAmount)
		assert.Equal(t, float64(-50), *view.PendingAmount)
	})

	t.Run("unknown payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Fixed Site", domain.CategoryFixed, 100)

		_, err := svc.Update(adminContext(), project.ID, uuid.New(), &domain.UpdatePaymentRequest{})
		assert.ErrorIs(t, err, service.ErrPaymentNotFound)
	})
}

func TestPaymentService_Delete(t *testing.T) {
	t.Run("delete restores pending and keeps completed milestones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Milestone Site", domain.CategoryMilestone, 0)
		milestone := addMilestone(t, db, project.ID, "Design", 200, 0)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddPaymentRequest{
			Amount:        200,
			PaymentMethod: "bank",
			MilestoneID:   &milestone.ID,
		})
		require.NoError(t, err)
		require.Equal(t, domain.MilestoneStatusCompleted, view.Milestones[0].Status)
		paymentID := view.Payments[0].ID

		view, err = svc.Delete(adminContext(), project.ID, paymentID)
		require.NoError(t, err)

		assert.Empty(t, view.Payments)
		assert.Equal(t, float64(0), *view.PaidAmount)
		assert.Equal(t, float64(200), *view.PendingAmount)
		assert.Equal(t, domain.MilestoneStatusCompleted, view.Milestones[0].Status)
	})

	t.Run("unknown payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewPaymentService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Fixed Site", domain.CategoryFixed, 100)

		_, err := svc.Delete(adminContext(), project.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrPaymentNotFound)
	})
}
