package service_test

import (
	"context"
	"strings"

	"itabus/internal/model"
	"itabus/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubItemRepo is an in-memory ItemRepository for testing.
type stubItemRepo struct {
	items map[uuid.UUID]*model.Item
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) Create(_ context.Context, i *model.Item) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.items[i.ID] = i
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubItemRepo) ListAll(_ context.Context) ([]model.Item, error) {
	items := make([]model.Item, 0, len(r.items))
	for _, i := range r.items {
		items = append(items, *i)
	}
	return items, nil
}

func (r *stubItemRepo) Update(_ context.Context, i *model.Item) error {
	r.items[i.ID] = i
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	for _, i := range r.items {
		if i.ParentID != nil && *i.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

// failingItemRepo simulates a storage outage: every lookup fails with an
// error that is not gorm.ErrRecordNotFound.
type failingItemRepo struct {
	stubItemRepo
	err error
}

func (r *failingItemRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Item, error) {
	return nil, r.err
}

// seedItem inserts an item directly, bypassing service validation.
func seedItem(r *stubItemRepo, name string, level int, parentID *uuid.UUID, cost *decimal.Decimal) *model.Item {
	item := &model.Item{
		ID:       uuid.New(),
		Name:     name,
		Level:    level,
		ParentID: parentID,
		Cost:     cost,
	}
	r.items[item.ID] = item
	return item
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// stubProjectRepo is an in-memory ProjectRepository. DB() returns nil so
// runTx executes the callback directly, without a real transaction.
type stubProjectRepo struct {
	projects map[uuid.UUID]*model.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[uuid.UUID]*model.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, _ *gorm.DB, p *model.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].ProjectID = p.ID
	}
	r.projects[p.ID] = p
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]model.Project, error) {
	projects := make([]model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, *p)
	}
	return projects, nil
}

func (r *stubProjectRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	for _, p := range r.projects {
		if p.UserID == userID {
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) DB() *gorm.DB { return nil }

var _ repository.ProjectRepository = (*stubProjectRepo)(nil)

// stubRatesRepo holds at most one rate record, like the real table.
type stubRatesRepo struct {
	record *model.GlobalRates
}

func (r *stubRatesRepo) Get(_ context.Context) (*model.GlobalRates, error) {
	if r.record == nil {
		return nil, nil
	}
	rec := *r.record
	return &rec, nil
}

func (r *stubRatesRepo) Save(_ context.Context, rec *model.GlobalRates) error {
	saved := *rec
	r.record = &saved
	return nil
}

var _ repository.RatesRepository = (*stubRatesRepo)(nil)

// defaultRates mirrors the seeded production configuration.
func defaultRates() *model.GlobalRates {
	return &model.GlobalRates{
		ProfitMin:        decimal.NewFromInt(10),
		ProfitIdeal:      decimal.NewFromInt(20),
		AgencyCommission: decimal.NewFromInt(5),
		BV:               decimal.NewFromInt(3),
		Taxes:            decimal.NewFromInt(15),
	}
}

// stubUserRepo is an in-memory UserRepository for testing.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
