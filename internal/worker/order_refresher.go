package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/metrics"
)

// OrderBoard exposes the subset of the admin board required by the refresher.
type OrderBoard interface {
	FetchOrders(ctx context.Context, page int) (*model.OrderPage, error)
	HasMore() bool
}

// OrderRefresher periodically reloads the admin board from page 1.
type OrderRefresher struct {
	board    OrderBoard
	interval time.Duration
	maxPages int
	logger   *slog.Logger
	metrics  *metrics.Metrics

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOrderRefresher constructs the board refresher.
func NewOrderRefresher(board OrderBoard, interval time.Duration, maxPages int, logger *slog.Logger, m *metrics.Metrics) *OrderRefresher {
	if maxPages <= 0 {
		maxPages = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &OrderRefresher{
		board:    board,
		interval: interval,
		maxPages: maxPages,
		logger:   logger,
		metrics:  m,
	}
}

// Start runs one refresh right away and then one per interval.
func (r *OrderRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop waits for the running refresh to finish.
func (r *OrderRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OrderRefresher) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *OrderRefresher) refresh(ctx context.Context) {
	page, err := r.board.FetchOrders(ctx, 1)
	if r.handled(ctx, 1, err) {
		return
	}
	if page == nil {
		r.metrics.RefreshRun("skipped")
		return
	}

	pages := 1
	for r.board.HasMore() && pages < r.maxPages {
		pages++
		if _, err := r.board.FetchOrders(ctx, pages); r.handled(ctx, pages, err) {
			return
		}
	}
	r.metrics.RefreshRun("ok")
	r.logger.Debug("order board refreshed", slog.Int("pages", pages))
}

// handled reports whether err ended the current refresh.
func (r *OrderRefresher) handled(ctx context.Context, page int, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, domainErrors.ErrStale), errors.Is(err, domainErrors.ErrClosed), ctx.Err() != nil:
		r.metrics.RefreshRun("aborted")
	default:
		r.metrics.RefreshRun("error")
		r.logger.Error("order board refresh failed", slog.Int("page", page), slog.String("error", err.Error()))
	}
	return true
}
