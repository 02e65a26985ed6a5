package repository

import (
	"context"

	"itabus/internal/model"

	"gorm.io/gorm"
)

// QuoteEventRepository persists the async audit trail of priced evaluations.
type QuoteEventRepository interface {
	Create(ctx context.Context, e *model.QuoteEvent) error
	ListRecent(ctx context.Context, limit int) ([]model.QuoteEvent, error)
}

type quoteEventRepo struct{ db *gorm.DB }

func NewQuoteEventRepository(db *gorm.DB) QuoteEventRepository {
	return &quoteEventRepo{db: db}
}

func (r *quoteEventRepo) Create(ctx context.Context, e *model.QuoteEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *quoteEventRepo) ListRecent(ctx context.Context, limit int) ([]model.QuoteEvent, error) {
	var events []model.QuoteEvent
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}
