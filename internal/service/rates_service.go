package service

import (
	"context"
	"sync/atomic"
	"time"

	"itabus/internal/dto"
	"itabus/internal/model"
	"itabus/internal/pricing"
	"itabus/internal/repository"
)

// RatesService owns the process-wide rate configuration. The stored row is
// mirrored in an atomically swapped snapshot: calculations read the snapshot,
// updates write the row and then replace the snapshot in one step, so a
// concurrent reader sees either the old or the new rate set — never a mix.
type RatesService interface {
	// Load primes the snapshot from storage. Called once at startup.
	Load(ctx context.Context) error
	Get(ctx context.Context) (*dto.RatesResponse, error)
	Update(ctx context.Context, req dto.UpdateRatesRequest) (*dto.RatesResponse, error)
	// Snapshot returns the current rate set, or nil when not configured.
	Snapshot() *pricing.Rates
}

type ratesService struct {
	repo    repository.RatesRepository
	current atomic.Pointer[model.GlobalRates]
}

func NewRatesService(repo repository.RatesRepository) RatesService {
	return &ratesService{repo: repo}
}

func (s *ratesService) Load(ctx context.Context) error {
	rates, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	if rates != nil {
		s.current.Store(rates)
	}
	return nil
}

// Get never lazily persists a default row — an unconfigured system stays
// observably unconfigured and reads as all zeros.
func (s *ratesService) Get(_ context.Context) (*dto.RatesResponse, error) {
	resp := mapRates(s.current.Load())
	return &resp, nil
}

func (s *ratesService) Update(ctx context.Context, req dto.UpdateRatesRequest) (*dto.RatesResponse, error) {
	// Copy-on-write: mutate a copy of the current record, persist, then swap.
	updated := model.GlobalRates{}
	if cur := s.current.Load(); cur != nil {
		updated = *cur
	}

	if req.ProfitMin != nil {
		updated.ProfitMin = *req.ProfitMin
	}
	if req.ProfitIdeal != nil {
		updated.ProfitIdeal = *req.ProfitIdeal
	}
	if req.AgencyCommission != nil {
		updated.AgencyCommission = *req.AgencyCommission
	}
	if req.BV != nil {
		updated.BV = *req.BV
	}
	if req.Taxes != nil {
		updated.Taxes = *req.Taxes
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, err
	}
	s.current.Store(&updated)

	resp := mapRates(&updated)
	return &resp, nil
}

func (s *ratesService) Snapshot() *pricing.Rates {
	cur := s.current.Load()
	if cur == nil {
		return nil
	}
	return &pricing.Rates{
		ProfitMin:        cur.ProfitMin,
		ProfitIdeal:      cur.ProfitIdeal,
		AgencyCommission: cur.AgencyCommission,
		BV:               cur.BV,
		Taxes:            cur.Taxes,
	}
}

func mapRates(r *model.GlobalRates) dto.RatesResponse {
	if r == nil {
		return dto.RatesResponse{Configured: false}
	}
	updatedAt := r.UpdatedAt.Format(time.RFC3339)
	return dto.RatesResponse{
		ProfitMin:        r.ProfitMin,
		ProfitIdeal:      r.ProfitIdeal,
		AgencyCommission: r.AgencyCommission,
		BV:               r.BV,
		Taxes:            r.Taxes,
		Configured:       true,
		UpdatedAt:        &updatedAt,
	}
}
