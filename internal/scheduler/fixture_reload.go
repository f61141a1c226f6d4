package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/accountlink/internal/fixtures"
	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/store"
)

// FixtureReloader seeds the store from the fixture file and re-applies it
// periodically or on demand.
type FixtureReloader struct {
	loader        *fixtures.Loader
	store         store.Store
	logger        logger.Logger
	interval      time.Duration // 0 = no periodic reload
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger <-chan struct{}
}

// NewFixtureReloader creates a new fixture reloader
func NewFixtureReloader(
	fixtureFile string,
	st store.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *FixtureReloader {
	return &FixtureReloader{
		loader:        fixtures.NewLoader(fixtureFile),
		store:         st,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start seeds the store once, then keeps reloading in the background.
func (fr *FixtureReloader) Start(ctx context.Context) error {
	if _, err := fr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	var tick <-chan time.Time
	if fr.interval > 0 {
		ticker := time.NewTicker(fr.interval)
		tick = ticker.C
		go func() {
			<-fr.stopCh
			ticker.Stop()
		}()
	}

	go func() {
		for {
			select {
			case <-tick:
				fr.reloadLogged(ctx)
			case <-fr.manualTrigger:
				fr.logger.Info("manual reload triggered")
				fr.reloadLogged(ctx)
			case <-fr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. Calling it more than once is a no-op.
func (fr *FixtureReloader) Stop() {
	fr.stopOnce.Do(func() { close(fr.stopCh) })
}

func (fr *FixtureReloader) reloadLogged(ctx context.Context) {
	// select picks randomly when a tick and Stop race
	select {
	case <-fr.stopCh:
		return
	default:
	}
	if _, err := fr.Reload(ctx); err != nil {
		fr.logger.Error("failed to reload account links", logger.Error(err))
	}
}

// Reload loads the fixture file and upserts every link it declares.
// Links missing from the file are left alone: removal goes through the API.
func (fr *FixtureReloader) Reload(ctx context.Context) (int, error) {
	file, err := fr.loader.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load fixtures: %w", err)
	}

	links, err := fixtures.MapLinks(file)
	if err != nil {
		return 0, fmt.Errorf("failed to map fixtures: %w", err)
	}

	if err := fr.store.SaveLinks(ctx, links); err != nil {
		return 0, fmt.Errorf("failed to save links: %w", err)
	}

	fr.logger.Info("account links loaded from fixtures",
		logger.Int("count", len(links)))
	return len(links), nil
}
