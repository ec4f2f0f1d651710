package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// withLedgers preloads the three sub-ledgers in stable order
func withLedgers(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("TimeEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, created_at ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, created_at ASC")
		})
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := withLedgers(r.db.WithContext(ctx)).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := withLedgers(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListForTeamLead returns the lead's own projects plus the visible unclaimed
// pool they could still pick from.
func (r *ProjectRepository) ListForTeamLead(ctx context.Context, leadID uuid.UUID, pickableStatuses []domain.ProjectStatus) ([]domain.Project, error) {
	var projects []domain.Project
	err := withLedgers(r.db.WithContext(ctx)).
		Where("team_lead_id = ?", leadID).
		Or("team_lead_id IS NULL AND visible_to_team_leads = ? AND status IN ?", true, pickableStatuses).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListForEmployee returns projects the employee is staffed on. Employees are
// stored as a JSON array of user id strings, so the match is done in memory.
func (r *ProjectRepository) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Project, error) {
	var staffed []domain.Project
	err := withLedgers(r.db.WithContext(ctx)).
		Where("team_lead_id IS NOT NULL").
		Order("created_at DESC").
		Find(&staffed).Error
	if err != nil {
		return nil, err
	}

	id := employeeID.String()
	var projects []domain.Project
	for _, p := range staffed {
		for _, e := range p.Employees {
			if e == id {
				projects = append(projects, p)
				break
			}
		}
	}
	return projects, nil
}

// CountByTeamLeadInStatuses counts the lead's projects currently inside the
// quota window
func (r *ProjectRepository) CountByTeamLeadInStatuses(ctx context.Context, leadID uuid.UUID, statuses []domain.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("team_lead_id = ? AND status IN ?", leadID, statuses).
		Count(&count).Error
	return count, err
}

// ClaimForTeamLead performs the atomic conditional pick. The update only
// matches unclaimed, visible projects in a pickable status, so two racing
// leads can never both claim the same project. A pending project is moved to
// in-progress as part of the same statement.
func (r *ProjectRepository) ClaimForTeamLead(ctx context.Context, projectID, leadID uuid.UUID, pickableStatuses []domain.ProjectStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ? AND team_lead_id IS NULL AND visible_to_team_leads = ? AND status IN ?",
			projectID, true, pickableStatuses).
		Updates(map[string]interface{}{
			"team_lead_id": leadID,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				domain.ProjectStatusPending, domain.ProjectStatusInProgress),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateTotals persists only the derived pricing columns
func (r *ProjectRepository) UpdateTotals(ctx context.Context, tx *gorm.DB, project *domain.Project) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"actual_hours":   project.ActualHours,
			"total_amount":   project.TotalAmount,
			"paid_amount":    project.PaidAmount,
			"pending_amount": project.PendingAmount,
		}).Error
}

// ListIDs returns every project id, used by the nightly totals reconciliation
func (r *ProjectRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}
