package repository

import (
	"context"

	"itabus/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository defines the data access contract for projects and their lines.
type ProjectRepository interface {
	// Create persists the project header together with all its lines. When tx
	// is non-nil the insert runs inside that transaction, so the project never
	// becomes visible to readers in a half-built state.
	Create(ctx context.Context, tx *gorm.DB, p *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	// Delete removes the project and cascades to its lines.
	Delete(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) ProjectRepository { return &projectRepo{db: db} }

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Project) error {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	return db.Create(p).Error
}

func (r *projectRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Item").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Item").
		Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Item").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Project{ID: id}).Error
}

func (r *projectRepo) DB() *gorm.DB { return r.db }
