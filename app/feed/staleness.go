package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MinRefreshInterval is the shortest staleness interval the timer accepts.
const MinRefreshInterval = 30 * time.Second

// StalenessTimer periodically flags the loaded feed as stale. It never
// fetches: the flag is a hint for the consumer to trigger an explicit
// Load. The timer runs only when both an interval of at least
// MinRefreshInterval and a feed URL are configured.
type StalenessTimer struct {
	loader   *Loader
	interval time.Duration
	enabled  bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewStalenessTimer(loader *Loader, interval time.Duration, feedURL string) *StalenessTimer {
	return &StalenessTimer{
		loader:   loader,
		interval: interval,
		enabled:  interval >= MinRefreshInterval && feedURL != "",
	}
}

func (t *StalenessTimer) Enabled() bool {
	return t.enabled
}

// Start launches the ticker goroutine. Starting an already running or
// disabled timer is a no-op.
func (t *StalenessTimer) Start() {
	if !t.enabled {
		slog.Debug("Staleness timer disabled", "interval", t.interval)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.loader.MarkStale()
			}
		}
	}()

	slog.Info("Staleness timer started", "interval", t.interval)
}

// Stop cancels the ticker and waits for it to exit.
func (t *StalenessTimer) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		t.wg.Wait()
	}
}

// Restart resets the tick phase, typically after a successful manual
// refresh so the next staleness hint arrives a full interval later.
func (t *StalenessTimer) Restart() {
	t.Stop()
	t.Start()
}
