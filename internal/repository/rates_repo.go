package repository

import (
	"context"
	"errors"

	"itabus/internal/model"

	"gorm.io/gorm"
)

// RatesRepository persists the single global rate record.
type RatesRepository interface {
	// Get returns the rate record, or (nil, nil) when none exists yet.
	Get(ctx context.Context) (*model.GlobalRates, error)
	Save(ctx context.Context, r *model.GlobalRates) error
}

type ratesRepo struct{ db *gorm.DB }

func NewRatesRepository(db *gorm.DB) RatesRepository { return &ratesRepo{db: db} }

func (r *ratesRepo) Get(ctx context.Context) (*model.GlobalRates, error) {
	var rates model.GlobalRates
	err := r.db.WithContext(ctx).First(&rates).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rates, nil
}

func (r *ratesRepo) Save(ctx context.Context, rates *model.GlobalRates) error {
	return r.db.WithContext(ctx).Save(rates).Error
}
