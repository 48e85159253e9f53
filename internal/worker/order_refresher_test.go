package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/iowasensors/internal/domain/errors"
	"github.com/polkiloo/iowasensors/internal/domain/model"
)

type boardStub struct {
	sync.Mutex
	pages   int
	hasMore bool
	errs    map[int]error
	empty   bool
	calls   []int
}

func (b *boardStub) FetchOrders(_ context.Context, page int) (*model.OrderPage, error) {
	b.Lock()
	defer b.Unlock()
	b.calls = append(b.calls, page)
	if err := b.errs[page]; err != nil {
		return nil, err
	}
	if b.empty {
		return nil, nil
	}
	b.hasMore = page < b.pages
	resp := &model.OrderPage{Results: []model.Order{{ID: int64(page)}}}
	if b.hasMore {
		resp.Next = json.RawMessage(`"next"`)
	}
	return resp, nil
}

func (b *boardStub) HasMore() bool {
	b.Lock()
	defer b.Unlock()
	return b.hasMore
}

func (b *boardStub) Calls() []int {
	b.Lock()
	defer b.Unlock()
	return append([]int(nil), b.calls...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func equalPages(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewOrderRefresherDefaults(t *testing.T) {
	r := NewOrderRefresher(&boardStub{}, 0, 0, discardLogger(), nil)
	if r.maxPages != 1 {
		t.Fatalf("expected max pages default to 1, got %d", r.maxPages)
	}
	if r.interval != time.Minute {
		t.Fatalf("expected interval default to 1m, got %v", r.interval)
	}
}

func TestRefreshFollowsPagesUpToLimit(t *testing.T) {
	board := &boardStub{pages: 5}
	r := NewOrderRefresher(board, time.Hour, 3, discardLogger(), nil)

	r.refresh(context.Background())

	if got := board.Calls(); !equalPages(got, []int{1, 2, 3}) {
		t.Fatalf("expected pages 1..3, got %v", got)
	}
}

func TestRefreshStopsWhenNoMorePages(t *testing.T) {
	board := &boardStub{pages: 2}
	r := NewOrderRefresher(board, time.Hour, 10, discardLogger(), nil)

	r.refresh(context.Background())

	if got := board.Calls(); !equalPages(got, []int{1, 2}) {
		t.Fatalf("expected pages 1 and 2, got %v", got)
	}
}

func TestRefreshSkipsWhenSignedOut(t *testing.T) {
	board := &boardStub{pages: 3, empty: true}
	r := NewOrderRefresher(board, time.Hour, 10, discardLogger(), nil)

	r.refresh(context.Background())

	if got := board.Calls(); !equalPages(got, []int{1}) {
		t.Fatalf("expected only page 1, got %v", got)
	}
}

func TestRefreshAbortsOnError(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"stale", domainErrors.ErrStale},
		{"closed", domainErrors.ErrClosed},
		{"backend", errors.New("boom")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			board := &boardStub{pages: 4, errs: map[int]error{2: tc.err}}
			r := NewOrderRefresher(board, time.Hour, 10, discardLogger(), nil)

			r.refresh(context.Background())

			if got := board.Calls(); !equalPages(got, []int{1, 2}) {
				t.Fatalf("expected refresh to stop at page 2, got %v", got)
			}
		})
	}
}

func TestOrderRefresherRunsImmediatelyAndOnTick(t *testing.T) {
	board := &boardStub{pages: 1}
	r := NewOrderRefresher(board, 10*time.Millisecond, 1, discardLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	r.Start(ctx)

	deadline := time.After(time.Second)
	for len(board.Calls()) < 3 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for periodic refresh")
		case <-time.After(5 * time.Millisecond):
		}
	}

	r.Stop()
	after := len(board.Calls())
	time.Sleep(30 * time.Millisecond)
	if got := len(board.Calls()); got != after {
		t.Fatalf("expected no refresh after stop, got %d more", got-after)
	}
}

func TestOrderRefresherStopWithoutStart(t *testing.T) {
	r := NewOrderRefresher(&boardStub{}, time.Second, 1, discardLogger(), nil)
	r.Stop()
}
