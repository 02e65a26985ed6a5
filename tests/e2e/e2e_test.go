//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Full quote cycle (register → rates → item → project → calculate)
//   T-E2E-2: Deleting a project removes its lines (cascade)
//   T-E2E-3: Project create is atomic — a failing line insert leaves no header
//   T-E2E-4: Quote audit pipeline (redis queue → worker → quote_events row)

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itabus/internal/config"
	"itabus/internal/infra"
	"itabus/internal/model"
	"itabus/internal/repository"
	"itabus/internal/router"
	"itabus/internal/service"
	"itabus/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("itabus_test"),
		tcPostgres.WithUsername("itabus"),
		tcPostgres.WithPassword("itabus"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	// Connect DB (runs AutoMigrate) + Redis
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Same wiring as cmd/server: rates snapshot, dispatcher, worker pool
	ratesSvc := service.NewRatesService(repository.NewRatesRepository(db))
	require.NoError(t, ratesSvc.Load(ctx))

	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	dispatcher := worker.NewDispatcher(rdb)
	quoteWorker := worker.NewQuoteWorker(repository.NewQuoteEventRepository(db))
	worker.StartWorkerPool(workerCtx, rdb, quoteWorker, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, ratesSvc, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Register and login as admin
	regResp := do(t, srv, "POST", "/v1/auth/register",
		jsonBody(t, map[string]string{
			"username": "admin_e2e",
			"email":    "admin@e2e.test",
			"password": "itabus2026",
			"role":     "admin",
		}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	regResp.Body.Close()

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "itabus2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		db:     db,
	}
}

// configureRates sets the default percentage set via the API.
func configureRates(t *testing.T, env *testEnv) {
	t.Helper()
	resp := do(t, env.server, "PUT", "/v1/global-rates",
		jsonBody(t, map[string]any{
			"profit_min": 10, "profit_ideal": 20,
			"agency_commission": 5, "bv": 3, "taxes": 15,
		}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// createItem creates a priced catalog leaf and returns its id.
func createItem(t *testing.T, env *testEnv, name string, cost float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/items",
		jsonBody(t, map[string]any{"name": name, "level": 1, "cost": cost}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &item)
	return item.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: Full quote cycle
func TestE2E_FullQuoteCycle(t *testing.T) {
	env := setupTestEnv(t)
	configureRates(t, env)
	itemID := createItem(t, env, "Busdoor lateral", 100)

	// Create project: 100 × 2 × 3 = 600 → 1052.63 / 895.52
	projResp := do(t, env.server, "POST", "/v1/projects",
		jsonBody(t, map[string]any{
			"name": "Campanha E2E",
			"items": []map[string]any{
				{"item_id": itemID, "quantity": 2, "duration": 3},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, projResp.StatusCode)
	var proj struct {
		ID          string          `json:"id"`
		TotalCost   decimal.Decimal `json:"total_cost"`
		TargetPrice decimal.Decimal `json:"target_price"`
		MinPrice    decimal.Decimal `json:"min_price"`
	}
	decodeJSON(t, projResp, &proj)
	assert.Equal(t, "600.00", proj.TotalCost.StringFixed(2))
	assert.Equal(t, "1052.63", proj.TargetPrice.StringFixed(2))
	assert.Equal(t, "895.52", proj.MinPrice.StringFixed(2))

	// Stateless calculation returns the same numbers without persisting
	calcResp := do(t, env.server, "POST", "/v1/calculate-price",
		jsonBody(t, map[string]any{
			"items": []map[string]any{
				{"item_id": itemID, "quantity": 2, "duration": 3},
			},
		}), env.token)
	require.Equal(t, http.StatusOK, calcResp.StatusCode)
	var calc struct {
		TargetPrice decimal.Decimal `json:"target_price"`
	}
	decodeJSON(t, calcResp, &calc)
	assert.Equal(t, "1052.63", calc.TargetPrice.StringFixed(2))

	var count int64
	require.NoError(t, env.db.Model(&model.Project{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// T-E2E-2: Deleting a project removes its lines
func TestE2E_DeleteProjectCascadesToLines(t *testing.T) {
	env := setupTestEnv(t)
	configureRates(t, env)
	itemID := createItem(t, env, "Busdoor traseira", 250)

	projResp := do(t, env.server, "POST", "/v1/projects",
		jsonBody(t, map[string]any{
			"name": "Campanha descartável",
			"items": []map[string]any{
				{"item_id": itemID, "quantity": 1, "duration": 2},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, projResp.StatusCode)
	var proj struct {
		ID string `json:"id"`
	}
	decodeJSON(t, projResp, &proj)

	var lines int64
	require.NoError(t, env.db.Model(&model.ProjectItem{}).
		Where("project_id = ?", proj.ID).Count(&lines).Error)
	require.EqualValues(t, 1, lines)

	delResp := do(t, env.server, "DELETE", "/v1/projects/"+proj.ID, nil, env.token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	// Header and lines are both gone — no orphans
	require.NoError(t, env.db.Model(&model.ProjectItem{}).
		Where("project_id = ?", proj.ID).Count(&lines).Error)
	assert.EqualValues(t, 0, lines)

	var headers int64
	require.NoError(t, env.db.Model(&model.Project{}).Count(&headers).Error)
	assert.EqualValues(t, 0, headers)
}

// T-E2E-3: Project create is atomic
func TestE2E_CreateProjectIsAtomic(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	repo := repository.NewProjectRepository(env.db)

	// A line referencing a nonexistent item violates the FK, which must roll
	// back the header insert from the same transaction.
	project := model.Project{
		Name:   "Nunca visível",
		UserID: seedUser(t, env.db),
		Items: []model.ProjectItem{
			{
				ItemID:    uuid.New(), // not in the catalog
				Quantity:  1,
				Duration:  1,
				UnitCost:  decimal.NewFromInt(100),
				TotalCost: decimal.NewFromInt(100),
			},
		},
	}
	err := env.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repo.Create(ctx, tx, &project)
	})
	require.Error(t, err)

	var headers int64
	require.NoError(t, env.db.Model(&model.Project{}).
		Where("name = ?", "Nunca visível").Count(&headers).Error)
	assert.EqualValues(t, 0, headers)
}

// seedUser inserts a user row directly and returns its id — T-E2E-3 works
// below the HTTP layer, so there is no JWT identity to reuse.
func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	u := model.User{
		Username:     "dono_projeto",
		Email:        "dono@e2e.test",
		PasswordHash: "x",
		Role:         model.RoleComercial,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

// T-E2E-4: Quote audit pipeline
func TestE2E_QuoteEventPipeline(t *testing.T) {
	env := setupTestEnv(t)
	configureRates(t, env)
	itemID := createItem(t, env, "Envelopamento", 400)

	projResp := do(t, env.server, "POST", "/v1/projects",
		jsonBody(t, map[string]any{
			"name": "Campanha auditada",
			"items": []map[string]any{
				{"item_id": itemID, "quantity": 1, "duration": 1},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, projResp.StatusCode)
	projResp.Body.Close()

	calcResp := do(t, env.server, "POST", "/v1/calculate-price",
		jsonBody(t, map[string]any{
			"items": []map[string]any{
				{"item_id": itemID, "quantity": 1, "duration": 1},
			},
		}), env.token)
	require.Equal(t, http.StatusOK, calcResp.StatusCode)
	calcResp.Body.Close()

	// The worker pool drains the redis queue asynchronously
	assert.Eventually(t, func() bool {
		var count int64
		if err := env.db.Model(&model.QuoteEvent{}).Count(&count).Error; err != nil {
			return false
		}
		return count == 2
	}, 10*time.Second, 200*time.Millisecond)

	var kinds []string
	require.NoError(t, env.db.Model(&model.QuoteEvent{}).
		Order("kind ASC").Pluck("kind", &kinds).Error)
	assert.Equal(t, []string{model.QuoteKindProject, model.QuoteKindSimulation}, kinds)
}
