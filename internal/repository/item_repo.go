package repository

import (
	"context"

	"itabus/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository defines the data access contract for catalog items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
//
// Listing is deliberately flat: the catalog service loads the full item set
// once per query and builds its own children index, so filters and tree
// assembly never depend on live DB relations.
type ItemRepository interface {
	Create(ctx context.Context, i *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListAll(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, i *model.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var i model.Item
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *itemRepo) ListAll(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("level ASC, name ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id).Error
}

func (r *itemRepo) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Where("parent_id = ?", id).Count(&count).Error
	return count > 0, err
}
