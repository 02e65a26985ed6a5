package worker

import (
	"context"
	"encoding/json"
	"time"

	"itabus/internal/model"
	"itabus/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const QueueQuotes = "jobs:quotes"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// QuotePayload is the audit record of one priced evaluation. Amounts travel
// as decimal strings so the queue never loses precision.
type QuotePayload struct {
	Kind        string `json:"kind"`
	UserID      string `json:"user_id"`
	TotalCost   string `json:"total_cost"`
	TargetPrice string `json:"target_price"`
	MinPrice    string `json:"min_price"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueQuote pushes a quote audit job to Redis.
func (d *Dispatcher) EnqueueQuote(ctx context.Context, payload QuotePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "quote", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueQuotes, encoded).Err()
}

// QuoteWorker persists quote audit events dequeued from Redis.
type QuoteWorker struct {
	repo repository.QuoteEventRepository
}

func NewQuoteWorker(repo repository.QuoteEventRepository) *QuoteWorker {
	return &QuoteWorker{repo: repo}
}

func (w *QuoteWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var p QuotePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return err
	}
	totalCost, err := decimal.NewFromString(p.TotalCost)
	if err != nil {
		return err
	}
	targetPrice, err := decimal.NewFromString(p.TargetPrice)
	if err != nil {
		return err
	}
	minPrice, err := decimal.NewFromString(p.MinPrice)
	if err != nil {
		return err
	}
	return w.repo.Create(ctx, &model.QuoteEvent{
		Kind:        p.Kind,
		UserID:      userID,
		TotalCost:   totalCost,
		TargetPrice: targetPrice,
		MinPrice:    minPrice,
	})
}

// StartWorkerPool launches numWorkers goroutines consuming the quote queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, quotes *QuoteWorker, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, quotes, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, quotes *QuoteWorker, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueQuotes).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, quotes, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, quotes *QuoteWorker, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "quote":
		if err := quotes.Handle(ctx, job.Payload); err != nil {
			log.Error().Str("type", job.Type).Err(err).Msg("quote worker failed")
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), 1)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type dropped")
	}
}
