package service_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/testutil"
)

func ownedProject(t *testing.T, db *gorm.DB, name string, leadID uuid.UUID, status domain.ProjectStatus) *domain.Project {
	t.Helper()
	project := testutil.CreateTestProject(t, db, name, domain.CategoryFixed, 100)
	project.TeamLeadID = &leadID
	project.Status = status
	require.NoError(t, db.Save(project).Error)
	return project
}

func TestAssignmentService_Pick(t *testing.T) {
	t.Run("pick claims the project and moves pending to in-progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := testutil.CreateTestProject(t, db, "Open Project", domain.CategoryFixed, 100)

		view, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), project.ID)
		require.NoError(t, err)

		require.NotNil(t, view.TeamLeadID)
		assert.Equal(t, lead.ID, *view.TeamLeadID)
		assert.Equal(t, domain.ProjectStatusInProgress, view.Status)
	})

	t.Run("active project keeps its status on claim", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := testutil.CreateTestProject(t, db, "Active Project", domain.CategoryFixed, 100)
		project.Status = domain.ProjectStatusActive
		require.NoError(t, db.Save(project).Error)

		view, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), project.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.ProjectStatusActive, view.Status)
	})

	t.Run("already owned project cannot be picked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		owner := testutil.CreateTestUser(t, db, "owner", domain.RoleTeamLead)
		other := testutil.CreateTestUser(t, db, "other", domain.RoleTeamLead)
		project := ownedProject(t, db, "Taken", owner.ID, domain.ProjectStatusInProgress)

		_, err := svc.Pick(testContext(other.ID, domain.RoleTeamLead), project.ID)
		assert.ErrorIs(t, err, service.ErrProjectAlreadyOwned)
	})

	t.Run("hidden project cannot be picked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := testutil.CreateTestProject(t, db, "Hidden", domain.CategoryFixed, 100)
		require.NoError(t, db.Model(project).Update("visible_to_team_leads", false).Error)

		_, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), project.ID)
		assert.ErrorIs(t, err, service.ErrProjectNotPickable)
	})

	t.Run("on-hold project cannot be picked", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := testutil.CreateTestProject(t, db, "Held", domain.CategoryFixed, 100)
		require.NoError(t, db.Model(project).Update("status", domain.ProjectStatusOnHold).Error)

		_, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), project.ID)
		assert.ErrorIs(t, err, service.ErrProjectNotPickable)
	})

	t.Run("unknown project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)

		_, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), uuid.New())
		assert.ErrorIs(t, err, service.ErrProjectNotFound)
	})

	t.Run("quota cap blocks the pick", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		for i := 0; i < 5; i++ {
			ownedProject(t, db, fmt.Sprintf("Owned %d", i), lead.ID, domain.ProjectStatusInProgress)
		}
		open := testutil.CreateTestProject(t, db, "One More", domain.CategoryFixed, 100)

		_, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), open.ID)
		assert.ErrorIs(t, err, service.ErrQuotaExceeded)
	})

	t.Run("completed projects do not count against the quota", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		for i := 0; i < 4; i++ {
			ownedProject(t, db, fmt.Sprintf("Owned %d", i), lead.ID, domain.ProjectStatusInProgress)
		}
		ownedProject(t, db, "Done", lead.ID, domain.ProjectStatusCompleted)
		open := testutil.CreateTestProject(t, db, "One More", domain.CategoryFixed, 100)

		_, err := svc.Pick(testContext(lead.ID, domain.RoleTeamLead), open.ID)
		assert.NoError(t, err)
	})
}

func TestAssignmentService_Release(t *testing.T) {
	t.Run("release clears staffing and returns the project to pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := ownedProject(t, db, "Owned", lead.ID, domain.ProjectStatusInProgress)
		project.Employees = []string{uuid.NewString(), uuid.NewString()}
		require.NoError(t, db.Save(project).Error)

		view, err := svc.Release(testContext(lead.ID, domain.RoleTeamLead), project.ID, "workload")
		require.NoError(t, err)

		assert.Nil(t, view.TeamLeadID)
		assert.Empty(t, view.Employees)
		assert.Equal(t, domain.ProjectStatusPending, view.Status)
	})

	t.Run("only the owner may release", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		owner := testutil.CreateTestUser(t, db, "owner", domain.RoleTeamLead)
		other := testutil.CreateTestUser(t, db, "other", domain.RoleTeamLead)
		project := ownedProject(t, db, "Owned", owner.ID, domain.ProjectStatusInProgress)

		_, err := svc.Release(testContext(other.ID, domain.RoleTeamLead), project.ID, "")
		assert.ErrorIs(t, err, service.ErrNotProjectOwner)
	})

	t.Run("terminal projects cannot be released", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)

		for _, status := range []domain.ProjectStatus{domain.ProjectStatusCompleted, domain.ProjectStatusCancelled} {
			project := ownedProject(t, db, "Finished "+string(status), lead.ID, status)

			_, err := svc.Release(testContext(lead.ID, domain.RoleTeamLead), project.ID, "")
			assert.ErrorIs(t, err, service.ErrProjectTerminal)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)

		_, err := svc.Release(testContext(lead.ID, domain.RoleTeamLead), uuid.New(), "")
		assert.ErrorIs(t, err, service.ErrProjectNotFound)
	})
}

func TestAssignmentService_AssignTeamLead(t *testing.T) {
	t.Run("admin override bypasses pick preconditions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := testutil.CreateTestProject(t, db, "Hidden", domain.CategoryFixed, 100)
		require.NoError(t, db.Model(project).Update("visible_to_team_leads", false).Error)

		view, err := svc.AssignTeamLead(adminContext(), project.ID, &lead.ID)
		require.NoError(t, err)

		require.NotNil(t, view.TeamLeadID)
		assert.Equal(t, lead.ID, *view.TeamLeadID)
	})

	t.Run("assignee must hold the teamlead role", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		employee := testutil.CreateTestUser(t, db, "emp", domain.RoleEmployee)
		project := testutil.CreateTestProject(t, db, "Open", domain.CategoryFixed, 100)

		_, err := svc.AssignTeamLead(adminContext(), project.ID, &employee.ID)
		assert.ErrorIs(t, err, service.ErrNotTeamLead)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		project := testutil.CreateTestProject(t, db, "Open", domain.CategoryFixed, 100)
		missing := uuid.New()

		_, err := svc.AssignTeamLead(adminContext(), project.ID, &missing)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("nil lead clears the assignment and the staffing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := ownedProject(t, db, "Owned", lead.ID, domain.ProjectStatusInProgress)
		project.Employees = []string{uuid.NewString()}
		require.NoError(t, db.Save(project).Error)

		view, err := svc.AssignTeamLead(adminContext(), project.ID, nil)
		require.NoError(t, err)

		assert.Nil(t, view.TeamLeadID)
		assert.Empty(t, view.Employees)
	})
}

func TestAssignmentService_AssignEmployees(t *testing.T) {
	t.Run("staffing requires a team lead", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		project := testutil.CreateTestProject(t, db, "Open", domain.CategoryFixed, 100)

		_, err := svc.AssignEmployees(adminContext(), project.ID, []string{uuid.NewString()})
		assert.ErrorIs(t, err, service.ErrNoTeamLead)
	})

	t.Run("staffing replaces the employee set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newAssignmentService(db, 5)
		lead := testutil.CreateTestUser(t, db, "lead", domain.RoleTeamLead)
		project := ownedProject(t, db, "Owned", lead.ID, domain.ProjectStatusInProgress)
		staff := []string{uuid.NewString(), uuid.NewString()}

		view, err := svc.AssignEmployees(adminContext(), project.ID, staff)
		require.NoError(t, err)

		assert.Equal(t, staff, view.Employees)
	})
}
