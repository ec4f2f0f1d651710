package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/testutil"
)

func TestTimeEntryService_Add(t *testing.T) {
	t.Run("logged hours drive the hourly total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Hourly Site", domain.CategoryHourly, 50)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{
			Hours:       3,
			Description: "api work",
		})
		require.NoError(t, err)

		assert.Equal(t, float64(3), view.ActualHours)
		require.NotNil(t, view.TotalAmount)
		assert.Equal(t, float64(150), *view.TotalAmount)
		assert.Equal(t, float64(150), *view.PendingAmount)
	})

	t.Run("non hourly projects reject time entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())

		for _, category := range []domain.ProjectCategory{domain.CategoryFixed, domain.CategoryMilestone} {
			project := testutil.CreateTestProject(t, db, "Site "+string(category), category, 100)

			_, err := svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{Hours: 2})
			assert.ErrorIs(t, err, service.ErrNotHourlyProject)
		}
	})

	t.Run("non positive hours are rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Hourly Site", domain.CategoryHourly, 50)

		_, err := svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{Hours: 0})
		assert.ErrorIs(t, err, service.ErrInvalidHours)

		_, err = svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{Hours: -1})
		assert.ErrorIs(t, err, service.ErrInvalidHours)
	})

	t.Run("unknown project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())

		_, err := svc.Add(adminContext(), uuid.New(), &domain.AddTimeEntryRequest{Hours: 1})
		assert.ErrorIs(t, err, service.ErrProjectNotFound)
	})
}

func TestTimeEntryService_Update(t *testing.T) {
	t.Run("hour change recomputes the total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Hourly Site", domain.CategoryHourly, 50)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{Hours: 3})
		require.NoError(t, err)
		entryID := view.TimeEntries[0].ID

		newHours := float64(5)
		view, err = svc.Update(adminContext(), project.ID, entryID, &domain.UpdateTimeEntryRequest{
			Hours: &newHours,
		})
		require.NoError(t, err)

		assert.Equal(t, float64(5), view.ActualHours)
		assert.Equal(t, float64(250), *view.TotalAmount)
	})

	t.Run("unknown entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Hourly Site", domain.CategoryHourly, 50)

		_, err := svc.Update(adminContext(), project.ID, uuid.New(), &domain.UpdateTimeEntryRequest{})
		assert.ErrorIs(t, err, service.ErrTimeEntryNotFound)
	})
}

func TestTimeEntryService_Delete(t *testing.T) {
	t.Run("delete recomputes without the entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Hourly Site", domain.CategoryHourly, 50)

		view, err := svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{Hours: 3})
		require.NoError(t, err)
		entryID := view.TimeEntries[0].ID

		_, err = svc.Add(adminContext(), project.ID, &domain.AddTimeEntryRequest{Hours: 2})
		require.NoError(t, err)

		view, err = svc.Delete(adminContext(), project.ID, entryID)
		require.NoError(t, err)

		require.Len(t, view.TimeEntries, 1)
		assert.Equal(t, float64(2), view.ActualHours)
		assert.Equal(t, float64(100), *view.TotalAmount)
	})

	t.Run("unknown entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewTimeEntryService(db, zap.NewNop())
		project := testutil.CreateTestProject(t, db, "Hourly Site", domain.CategoryHourly, 50)

		_, err := svc.Delete(adminContext(), project.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrTimeEntryNotFound)
	})
}
