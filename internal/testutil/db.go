package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// Each call returns an isolated database, so tests never share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Project{},
		&domain.Milestone{},
		&domain.TimeEntry{},
		&domain.Payment{},
		&domain.Notification{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// CreateTestUser inserts a user with the given role
func CreateTestUser(t *testing.T, db *gorm.DB, name string, role domain.Role) *domain.User {
	t.Helper()

	user := &domain.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestProject inserts a project with the given category and pricing input
func CreateTestProject(t *testing.T, db *gorm.DB, name string, category domain.ProjectCategory, amount float64) *domain.Project {
	t.Helper()

	project := &domain.Project{
		ProjectName:        name,
		ClientName:         "Test Client",
		Category:           category,
		Status:             domain.ProjectStatusPending,
		ClientStatus:       domain.ClientStatusReview,
		Employees:          []string{},
		VisibleToTeamLeads: true,
	}
	switch category {
	case domain.CategoryFixed:
		project.FixedAmount = amount
		project.TotalAmount = amount
		project.PendingAmount = amount
	case domain.CategoryHourly:
		project.HourlyRate = amount
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
