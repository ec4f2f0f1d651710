package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

func TestRecomputeTotals(t *testing.T) {
	t.Run("fixed project uses the fixed amount", func(t *testing.T) {
		p := &domain.Project{
			Category:    domain.CategoryFixed,
			FixedAmount: 1000,
			HourlyRate:  50, // must be ignored
		}

		service.RecomputeTotals(p)

		assert.Equal(t, float64(1000), p.TotalAmount)
		assert.Equal(t, float64(0), p.ActualHours)
		assert.Equal(t, float64(1000), p.PendingAmount)
	})

	t.Run("hourly project multiplies rate by logged hours", func(t *testing.T) {
		p := &domain.Project{
			Category:   domain.CategoryHourly,
			HourlyRate: 50,
			TimeEntries: []domain.TimeEntry{
				{Hours: 1.5},
				{Hours: 1.5},
			},
		}

		service.RecomputeTotals(p)

		assert.Equal(t, float64(3), p.ActualHours)
		assert.Equal(t, float64(150), p.TotalAmount)
		assert.Equal(t, float64(150), p.PendingAmount)
	})

	t.Run("milestone project sums milestone amounts", func(t *testing.T) {
		p := &domain.Project{
			Category: domain.CategoryMilestone,
			Milestones: []domain.Milestone{
				{Amount: 200},
				{Amount: 300},
			},
		}

		service.RecomputeTotals(p)

		assert.Equal(t, float64(500), p.TotalAmount)
		assert.Equal(t, float64(500), p.PendingAmount)
	})

	t.Run("payments reduce pending", func(t *testing.T) {
		p := &domain.Project{
			Category:    domain.CategoryFixed,
			FixedAmount: 150,
			Payments: []domain.Payment{
				{Amount: 100},
			},
		}

		service.RecomputeTotals(p)

		assert.Equal(t, float64(100), p.PaidAmount)
		assert.Equal(t, float64(50), p.PendingAmount)
	})

	t.Run("overpayment leaves pending negative", func(t *testing.T) {
		p := &domain.Project{
			Category:    domain.CategoryFixed,
			FixedAmount: 100,
			Payments: []domain.Payment{
				{Amount: 150},
			},
		}

		service.RecomputeTotals(p)

		assert.Equal(t, float64(-50), p.PendingAmount)
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		p := &domain.Project{
			Category:   domain.CategoryHourly,
			HourlyRate: 80,
			TimeEntries: []domain.TimeEntry{
				{Hours: 2},
				{Hours: 4.5},
			},
			Payments: []domain.Payment{
				{Amount: 120},
			},
		}

		service.RecomputeTotals(p)
		first := *p
		service.RecomputeTotals(p)

		assert.Equal(t, first.ActualHours, p.ActualHours)
		assert.Equal(t, first.TotalAmount, p.TotalAmount)
		assert.Equal(t, first.PaidAmount, p.PaidAmount)
		assert.Equal(t, first.PendingAmount, p.PendingAmount)
	})

	t.Run("stale derived values are overwritten", func(t *testing.T) {
		p := &domain.Project{
			Category:      domain.CategoryFixed,
			FixedAmount:   500,
			ActualHours:   99,
			TotalAmount:   1,
			PaidAmount:    2,
			PendingAmount: 3,
		}

		service.RecomputeTotals(p)

		assert.Equal(t, float64(0), p.ActualHours)
		assert.Equal(t, float64(500), p.TotalAmount)
		assert.Equal(t, float64(0), p.PaidAmount)
		assert.Equal(t, float64(500), p.PendingAmount)
	})
}
