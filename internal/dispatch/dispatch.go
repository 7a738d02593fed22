package dispatch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"surveyor/internal/api"
	"surveyor/internal/history"
)

// Dispatcher runs generation requests and feeds the history cache.
type Dispatcher struct {
	client *api.Client
	cache  *history.Cache
	logger *zap.Logger
	now    func() time.Time
}

// New creates a dispatcher. cache may be nil when history is disabled.
func New(client *api.Client, cache *history.Cache, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{client: client, cache: cache, logger: logger, now: time.Now}
}

// Run submits question to the generation endpoint. On success the query is
// recorded in history with its summary preview; a failure inside the
// history step is logged and never demotes the success. Validation and
// network errors come back to the caller untouched, with history unchanged.
func (d *Dispatcher) Run(ctx context.Context, question string, localLLM bool, provider string) (*api.GenerateResponse, error) {
	question = strings.TrimSpace(question)
	resp, err := d.client.Generate(ctx, api.GenerateRequest{
		Question: question,
		LocalLLM: localLLM,
		Provider: provider,
	})
	if err != nil {
		return nil, err
	}

	d.record(question, resp)
	return resp, nil
}

func (d *Dispatcher) record(question string, resp *api.GenerateResponse) {
	if d.cache == nil {
		return
	}

	// The history step must never take the success down with it.
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Warn("history record panicked", zap.Any("cause", rec))
		}
	}()

	overview := ""
	if resp.IsStructured() {
		overview = resp.StructuredData.Overview
	}

	d.cache.Record(history.Entry{
		Query:          question,
		Date:           d.now().UTC(),
		SummaryPreview: history.Preview(overview, resp.Answer),
	})
}

// History exposes the cache for the UI layers; nil when history is
// disabled.
func (d *Dispatcher) History() *history.Cache {
	return d.cache
}
