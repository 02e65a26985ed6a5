package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itabus/internal/dto"
	"itabus/internal/model"
	"itabus/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService defines business operations for the 3-level cost catalog.
type CatalogService interface {
	Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error)
}

type catalogService struct {
	repo repository.ItemRepository
}

func NewCatalogService(repo repository.ItemRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &model.Item{
		Name:   req.Name,
		Level:  req.Level,
		Cost:   req.Cost,
		Period: req.Period,
	}

	if req.ParentID != nil {
		pid, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent_id inválido: %w", err)
		}
		parent, err := s.repo.FindByID(ctx, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item pai: %w", ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		// Parents sit exactly one level up. This keeps parent chains strictly
		// decreasing in level, so the cost recursion can never loop.
		if parent.Level != req.Level-1 {
			return nil, fmt.Errorf("o pai de um item de nível %d deve ser de nível %d", req.Level, req.Level-1)
		}
		item.ParentID = &pid
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	index, err := s.childrenIndex(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(item, index, false)
	return &resp, nil
}

// Update changes name, cost and period only — level and parent are fixed at
// creation, mirroring how the catalog is administered.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Cost != nil {
		item.Cost = req.Cost
	}
	if req.Period != nil {
		item.Period = req.Period
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	index, err := s.childrenIndex(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(item, index, false)
	return &resp, nil
}

// Delete refuses to remove an item that still has children — cascading would
// silently destroy catalog structure, orphaning would corrupt derived costs.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item: %w", ErrNotFound)
		}
		return err
	}
	hasChildren, err := s.repo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return errors.New("o item possui itens filhos e não pode ser excluído")
	}
	return s.repo.Delete(ctx, id)
}

// List filters the catalog by level and/or parent and attaches each node's
// full children subtree with derived costs. The sentinel parent_id="null"
// selects root items.
func (s *catalogService) List(ctx context.Context, filter dto.ItemFilter) ([]dto.ItemResponse, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	index := buildChildrenIndex(items)

	var parentID *uuid.UUID
	rootsOnly := false
	switch filter.ParentID {
	case "":
	case "null":
		rootsOnly = true
	default:
		pid, err := uuid.Parse(filter.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent_id inválido: %w", err)
		}
		parentID = &pid
	}

	resp := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		item := &items[i]
		if filter.Level != 0 && item.Level != filter.Level {
			continue
		}
		if rootsOnly && item.ParentID != nil {
			continue
		}
		if parentID != nil && (item.ParentID == nil || *item.ParentID != *parentID) {
			continue
		}
		resp = append(resp, s.toResponse(item, index, true))
	}
	return resp, nil
}

// childrenIndex loads the flat item set and builds the adjacency list for it.
func (s *catalogService) childrenIndex(ctx context.Context) (map[uuid.UUID][]*model.Item, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildChildrenIndex(items), nil
}

// buildChildrenIndex derives the parent→children adjacency list from the flat
// item slice. The back-reference lives only in this per-query index — items
// themselves never hold live child relations.
func buildChildrenIndex(items []model.Item) map[uuid.UUID][]*model.Item {
	index := make(map[uuid.UUID][]*model.Item, len(items))
	for i := range items {
		item := &items[i]
		if item.ParentID != nil {
			index[*item.ParentID] = append(index[*item.ParentID], item)
		}
	}
	return index
}

// derivedCost returns the item's direct cost when set — authoritative even if
// children exist — and otherwise the recursive sum over its children. An item
// with neither cost nor children derives to zero.
func derivedCost(item *model.Item, index map[uuid.UUID][]*model.Item) decimal.Decimal {
	if item.Cost != nil {
		return *item.Cost
	}
	total := decimal.Zero
	for _, child := range index[item.ID] {
		total = total.Add(derivedCost(child, index))
	}
	return total
}

func (s *catalogService) toResponse(item *model.Item, index map[uuid.UUID][]*model.Item, withChildren bool) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		Level:     item.Level,
		Cost:      item.Cost,
		Period:    item.Period,
		TotalCost: derivedCost(item, index),
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
	if item.ParentID != nil {
		pid := item.ParentID.String()
		resp.ParentID = &pid
	}
	if withChildren {
		for _, child := range index[item.ID] {
			resp.Children = append(resp.Children, s.toResponse(child, index, true))
		}
	}
	return resp
}
