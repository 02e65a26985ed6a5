package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itabus/internal/dto"
	"itabus/internal/model"
	"itabus/internal/pricing"
	"itabus/internal/repository"
	"itabus/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectService assembles catalog selections into priced projects and runs
// stateless what-if quotations.
type ProjectService interface {
	Create(ctx context.Context, callerID uuid.UUID, req dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.ProjectResponse, error)
	List(ctx context.Context, caller Caller) ([]dto.ProjectResponse, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
	Calculate(ctx context.Context, callerID uuid.UUID, req dto.CalculatePriceRequest) (*dto.CalculatePriceResponse, error)
}

type projectService struct {
	repo       repository.ProjectRepository
	itemRepo   repository.ItemRepository
	rates      RatesService
	dispatcher *worker.Dispatcher
}

func NewProjectService(
	repo repository.ProjectRepository,
	itemRepo repository.ItemRepository,
	rates RatesService,
	dispatcher *worker.Dispatcher,
) ProjectService {
	return &projectService{repo: repo, itemRepo: itemRepo, rates: rates, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

type resolvedLine struct {
	itemID    uuid.UUID
	itemName  string
	quantity  int
	duration  int
	unitCost  decimal.Decimal
	lineTotal decimal.Decimal
}

// resolveLines turns raw selections into costed lines.
//   - an item id not present in the catalog is skipped silently;
//   - an item with a direct cost is priced at that cost, even with children;
//   - a true leaf with no cost prices at zero;
//   - an item whose cost only exists via its children is rejected — pricing it
//     at its direct (absent) cost would silently zero the line.
func (s *projectService) resolveLines(ctx context.Context, lines []dto.ProjectLineRequest) ([]resolvedLine, decimal.Decimal, error) {
	var resolved []resolvedLine
	totalCost := decimal.Zero

	for _, line := range lines {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("item_id inválido: %w", err)
		}
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown catalog reference: the selection contributes nothing.
			// Any other lookup failure aborts the resolution — dropping lines
			// on a storage error would price the project short.
			continue
		}
		if err != nil {
			return nil, decimal.Zero, err
		}

		var unitCost decimal.Decimal
		if item.Cost != nil {
			unitCost = *item.Cost
		} else {
			hasChildren, err := s.itemRepo.HasChildren(ctx, itemID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if hasChildren {
				return nil, decimal.Zero, fmt.Errorf("o item %q não possui custo direto; selecione seus itens filhos", item.Name)
			}
			unitCost = decimal.Zero
		}

		lineTotal := unitCost.
			Mul(decimal.NewFromInt(int64(line.Quantity))).
			Mul(decimal.NewFromInt(int64(line.Duration)))
		totalCost = totalCost.Add(lineTotal)

		resolved = append(resolved, resolvedLine{
			itemID:    itemID,
			itemName:  item.Name,
			quantity:  line.Quantity,
			duration:  line.Duration,
			unitCost:  unitCost,
			lineTotal: lineTotal,
		})
	}
	return resolved, totalCost, nil
}

// Create resolves all lines, derives both sell prices from the current rate
// snapshot and persists header plus lines in a single transaction. Absent
// rates are tolerated: the project is stored with zero prices. A scenario
// whose denominator is non-positive likewise leaves that price at zero.
func (s *projectService) Create(ctx context.Context, callerID uuid.UUID, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	resolved, totalCost, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	targetPrice := decimal.Zero
	minPrice := decimal.Zero
	if rates := s.rates.Snapshot(); rates != nil {
		if p, err := pricing.Price(totalCost, rates.ProfitIdeal, rates.Taxes, rates.AgencyCommission, rates.BV); err == nil {
			targetPrice = p
		}
		if p, err := pricing.Price(totalCost, rates.ProfitMin, rates.Taxes, rates.AgencyCommission, rates.BV); err == nil {
			minPrice = p
		}
	}

	project := model.Project{
		Name:        req.Name,
		UserID:      callerID,
		TotalCost:   totalCost,
		TargetPrice: targetPrice,
		MinPrice:    minPrice,
	}
	for _, r := range resolved {
		project.Items = append(project.Items, model.ProjectItem{
			ItemID:    r.itemID,
			Quantity:  r.quantity,
			Duration:  r.duration,
			UnitCost:  r.unitCost,
			TotalCost: r.lineTotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &project)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.enqueueQuote(ctx, model.QuoteKindProject, callerID, totalCost, targetPrice, minPrice)

	resp := mapProject(&project)
	for i, r := range resolved {
		resp.Items[i].ItemName = r.itemName
	}
	return resp, nil
}

func (s *projectService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("projeto: %w", ErrNotFound)
		}
		return nil, err
	}
	if !caller.IsAdmin() && project.UserID != caller.ID {
		return nil, ErrAccessDenied
	}
	return mapProject(project), nil
}

func (s *projectService) List(ctx context.Context, caller Caller) ([]dto.ProjectResponse, error) {
	var projects []model.Project
	var err error
	if caller.IsAdmin() {
		projects, err = s.repo.List(ctx)
	} else {
		projects, err = s.repo.ListByUser(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = *mapProject(&projects[i])
	}
	return resp, nil
}

func (s *projectService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("projeto: %w", ErrNotFound)
		}
		return err
	}
	if !caller.IsAdmin() && project.UserID != caller.ID {
		return ErrAccessDenied
	}
	return s.repo.Delete(ctx, id)
}

// Calculate runs the same aggregation as Create but persists nothing. Unlike
// project creation it is strict about configuration: missing rates and
// non-positive denominators are reported instead of defaulting.
func (s *projectService) Calculate(ctx context.Context, callerID uuid.UUID, req dto.CalculatePriceRequest) (*dto.CalculatePriceResponse, error) {
	_, totalCost, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	rates := s.rates.Snapshot()
	if rates == nil {
		return nil, ErrRatesNotConfigured
	}

	quote, err := pricing.Evaluate(totalCost, *rates)
	if err != nil {
		return nil, err
	}

	s.enqueueQuote(ctx, model.QuoteKindSimulation, callerID, totalCost, quote.TargetPrice, quote.MinPrice)

	ratesResp, _ := s.rates.Get(ctx)
	return &dto.CalculatePriceResponse{
		TotalCost:   totalCost,
		TargetPrice: quote.TargetPrice,
		MinPrice:    quote.MinPrice,
		Rates:       *ratesResp,
	}, nil
}

// enqueueQuote pushes an audit event to the worker queue. Best effort —
// a full queue or missing dispatcher never fails the pricing call.
func (s *projectService) enqueueQuote(ctx context.Context, kind string, userID uuid.UUID, total, target, min decimal.Decimal) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.EnqueueQuote(ctx, worker.QuotePayload{
		Kind:        kind,
		UserID:      userID.String(),
		TotalCost:   total.String(),
		TargetPrice: target.String(),
		MinPrice:    min.String(),
	})
}

func mapProject(p *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		UserID:      p.UserID.String(),
		TotalCost:   p.TotalCost,
		TargetPrice: p.TargetPrice,
		MinPrice:    p.MinPrice,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		Items:       make([]dto.ProjectItemResponse, len(p.Items)),
	}
	for i, line := range p.Items {
		item := dto.ProjectItemResponse{
			ID:        line.ID.String(),
			ItemID:    line.ItemID.String(),
			Quantity:  line.Quantity,
			Duration:  line.Duration,
			UnitCost:  line.UnitCost,
			TotalCost: line.TotalCost,
		}
		if line.Item != nil {
			item.ItemName = line.Item.Name
		}
		resp.Items[i] = item
	}
	return resp
}
