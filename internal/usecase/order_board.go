package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
	"github.com/polkiloo/iowasensors/internal/metrics"
)

// OrdersBackend is the part of the store backend the admin board talks to.
type OrdersBackend interface {
	AdminOrders(ctx context.Context, token string, page int) (*model.OrderPage, error)
	UpdateOrder(ctx context.Context, token string, orderID int64, update model.OrderStatusUpdate) (*model.Order, error)
}

// TokenSource yields the auth token stored on the device.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// OrderBoard holds admin orders grouped into delivery buckets.
//
// Each order ID lives in exactly one bucket. Results that arrive after Close,
// after the caller gave up, or after a newer page 1 refresh started are dropped.
type OrderBoard struct {
	owner  context.Context
	cancel context.CancelFunc

	client  OrdersBackend
	tokens  TokenSource
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu         sync.RWMutex
	buckets    map[model.BucketName][]model.Order
	location   map[int64]model.BucketName
	inflight   int
	hasMore    bool
	generation uint64
	resets     uint64
}

// NewOrderBoard creates an empty board bound to the lifetime of ctx.
func NewOrderBoard(ctx context.Context, client OrdersBackend, tokens TokenSource, logger *slog.Logger, m *metrics.Metrics) *OrderBoard {
	owner, cancel := context.WithCancel(ctx)
	return &OrderBoard{
		owner:    owner,
		cancel:   cancel,
		client:   client,
		tokens:   tokens,
		logger:   logger,
		metrics:  m,
		buckets:  emptyBuckets(),
		location: make(map[int64]model.BucketName),
	}
}

// FetchOrders loads one page of admin orders. Page 1 replaces the board, later
// pages append. A nil page with a nil error means no one is logged in.
func (b *OrderBoard) FetchOrders(ctx context.Context, page int) (*model.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if b.owner.Err() != nil {
		return nil, domainErrors.ErrClosed
	}

	token, ok, err := b.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		b.logger.Debug("no auth token stored, skipping order fetch")
		return nil, nil
	}

	b.mu.Lock()
	if page == 1 {
		b.generation++
	}
	gen := b.generation
	b.inflight++
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.inflight--
		b.mu.Unlock()
	}()

	reqCtx, cancel := b.bind(ctx)
	defer cancel()

	resp, err := b.client.AdminOrders(reqCtx, token, page)
	if err != nil {
		return nil, fmt.Errorf("fetch orders page %d: %w", page, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAlive(ctx); err != nil {
		return nil, err
	}
	if gen != b.generation {
		b.logger.Debug("dropping superseded order page", slog.Int("page", page))
		return nil, domainErrors.ErrStale
	}

	if page == 1 {
		b.buckets = emptyBuckets()
		b.location = make(map[int64]model.BucketName, len(resp.Results))
	}
	for _, order := range resp.Results {
		b.place(model.BucketFor(order.Status), order.Clone())
	}
	b.hasMore = resp.HasNext()
	b.publish()

	return resp, nil
}

// CompleteOrder marks an order as out for delivery with the given tracking number.
func (b *OrderBoard) CompleteOrder(ctx context.Context, orderID int64, trackingNumber string) (*model.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, invalid("tracking_number", "tracking number is required")
	}
	if b.owner.Err() != nil {
		return nil, domainErrors.ErrClosed
	}

	token, ok, err := b.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return nil, domainErrors.ErrNotAuthenticated
	}

	b.mu.RLock()
	resets := b.resets
	b.mu.RUnlock()

	reqCtx, cancel := b.bind(ctx)
	defer cancel()

	updated, err := b.client.UpdateOrder(reqCtx, token, orderID, model.OrderStatusUpdate{
		Status:         model.OrderStatusOutForDelivery,
		TrackingNumber: trackingNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("complete order %d: %w", orderID, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkAlive(ctx); err != nil {
		return nil, err
	}
	if resets != b.resets {
		return nil, domainErrors.ErrStale
	}

	order := updated.Clone()
	if order.ID == 0 {
		order.ID = orderID
	}
	order.Status = model.OrderStatusOutForDelivery
	b.place(model.BucketOutForDelivery, order)
	b.publish()

	b.logger.Info("order marked out for delivery", slog.Int64("order_id", order.ID))
	out := order.Clone()
	return &out, nil
}

// Buckets returns a deep copy of the board.
func (b *OrderBoard) Buckets() model.Buckets {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := model.NewBuckets()
	for name, orders := range b.buckets {
		copied := make([]model.Order, len(orders))
		for i, o := range orders {
			copied[i] = o.Clone()
		}
		snapshot[name] = copied
	}
	return snapshot
}

// Loading reports whether a page fetch is in flight.
func (b *OrderBoard) Loading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.inflight > 0
}

// HasMore reports whether the last applied page announced a next page.
func (b *OrderBoard) HasMore() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.hasMore
}

// Reset empties the board. Requests still in flight come back as ErrStale.
func (b *OrderBoard) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	b.resets++
	b.buckets = emptyBuckets()
	b.location = make(map[int64]model.BucketName)
	b.hasMore = false
	b.publish()
}

// Close cancels in-flight requests and discards any later results.
func (b *OrderBoard) Close() {
	b.cancel()
}

// bind derives a request context cancelled by either the caller or the board owner.
func (b *OrderBoard) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.owner, cancel)
	return reqCtx, func() {
		stop()
		cancel()
	}
}

func (b *OrderBoard) checkAlive(ctx context.Context) error {
	if b.owner.Err() != nil {
		return domainErrors.ErrClosed
	}
	return ctx.Err()
}

// place puts order at the end of bucket, or replaces it in place when it is
// already there. Must be called with mu held.
func (b *OrderBoard) place(bucket model.BucketName, order model.Order) {
	if current, ok := b.location[order.ID]; ok {
		orders := b.buckets[current]
		for i := range orders {
			if orders[i].ID != order.ID {
				continue
			}
			if current == bucket {
				orders[i] = order
				return
			}
			b.buckets[current] = append(orders[:i:i], orders[i+1:]...)
			break
		}
	}
	b.buckets[bucket] = append(b.buckets[bucket], order)
	b.location[order.ID] = bucket
}

func (b *OrderBoard) publish() {
	counts := make(map[string]int, len(b.buckets))
	for name, orders := range b.buckets {
		counts[string(name)] = len(orders)
	}
	b.metrics.SetBoardOrders(counts)
}

func emptyBuckets() map[model.BucketName][]model.Order {
	buckets := make(map[model.BucketName][]model.Order, len(model.BucketNames))
	for _, name := range model.BucketNames {
		buckets[name] = nil
	}
	return buckets
}
