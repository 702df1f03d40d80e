// Package notify watches the notification feed for new items. The
// feed service keeps no read/unread state, so arrival is detected by
// comparing the feed length against a count watermark.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// FetchFunc returns the current user's notification feed, newest
// first.
type FetchFunc func(ctx context.Context) ([]domain.Notification, error)

// AlertFunc is invoked once per detected batch of new items with the
// newest item and how many arrived since the last observation.
type AlertFunc func(latest domain.Notification, newCount int)

// Poller re-fetches the feed on a fixed interval and raises an alert
// when it grew. Fetch failures are treated as the service being
// unavailable: logged and skipped, leaving the watermark untouched.
type Poller struct {
	mu sync.Mutex

	fetch    FetchFunc
	alert    AlertFunc
	interval time.Duration
	logger   *slog.Logger

	lastCount int
	running   bool
	done      chan struct{}
}

// NewPoller builds a poller. The interval must be positive.
func NewPoller(fetch FetchFunc, alert AlertFunc, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		fetch:    fetch,
		alert:    alert,
		interval: interval,
		logger:   logger,
	}
}

// Reset seeds the watermark, typically from the feed fetched during
// the initial screen load, so items already on screen never alert.
func (p *Poller) Reset(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastCount = count
}

// Start launches the polling loop. It errors if already running.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("notify: poller already running")
	}
	p.running = true
	p.done = make(chan struct{})

	go p.loop(ctx, p.done)
	return nil
}

// Stop halts the loop. Safe to call when not running. A fetch already
// in flight has its result discarded rather than applied late.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.done)
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			return
		case <-done:
			return
		case <-ticker.C:
			p.check(ctx, done)
		}
	}
}

// check runs a single fetch-and-compare cycle.
func (p *Poller) check(ctx context.Context, done chan struct{}) {
	items, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("notification fetch failed", "error", err)
		return
	}

	select {
	case <-done:
		// Stopped while the fetch was in flight; a late result must
		// not move the watermark or alert.
		return
	default:
	}

	p.mu.Lock()
	newCount := len(items) - p.lastCount
	if newCount > 0 {
		p.lastCount = len(items)
	}
	p.mu.Unlock()

	// Shrinking or unchanged feeds never alert; the watermark only
	// advances.
	if newCount > 0 && len(items) > 0 && p.alert != nil {
		p.alert(items[0], newCount)
	}
}
