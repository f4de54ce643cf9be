package results

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"wageconv.org/explorer/internal/logging"
)

// Recorder receives load and lookup events. The metrics package implements it.
type Recorder interface {
	ObserveTableLoad(mode string, rows int, duration time.Duration)
	IncLookup(mode, outcome string)
	IncChartMissing(mode string)
	IncCache(hit bool)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTableLoad(string, int, time.Duration) {}
func (nopRecorder) IncLookup(string, string)                    {}
func (nopRecorder) IncChartMissing(string)                      {}
func (nopRecorder) IncCache(bool)                               {}

// Manager owns the loaded tables for every enabled mode and re-reads them once
// their cache entry expires.
type Manager struct {
	config   Config
	logger   *slog.Logger
	cache    *cache.Cache
	charts   *ChartResolver
	recorder Recorder

	loadMu   sync.Mutex
	lastGood map[Mode]*CountryTable
}

// InitManager validates the configuration and loads every enabled mode.
// Any load failure is returned: a mode that cannot be read is a startup error.
func InitManager(config Config, logger *slog.Logger, recorder Recorder) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	manager := &Manager{
		config:   config,
		logger:   logger.With(slog.String("component", "results_manager")),
		cache:    cache.New(ttl, 2*ttl),
		charts:   NewChartResolver(config, logger),
		recorder: recorder,
		lastGood: make(map[Mode]*CountryTable, len(config.Modes)),
	}

	for _, mode := range config.Modes {
		if _, err := manager.load(mode); err != nil {
			return nil, fmt.Errorf("loading %s tables: %w", mode, err)
		}
	}

	return manager, nil
}

func (manager *Manager) Config() Config {
	return manager.config
}

func (manager *Manager) Charts() *ChartResolver {
	return manager.charts
}

// Tables returns the table for mode, reading the CSV files again if the cached copy expired.
// A failed re-read keeps serving the last table that loaded.
func (manager *Manager) Tables(ctx context.Context, mode Mode) (*CountryTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !manager.config.ModeEnabled(mode) {
		return nil, fmt.Errorf("%w: %s", ErrModeDisabled, mode)
	}

	if cached, found := manager.cache.Get(mode.String()); found {
		manager.recorder.IncCache(true)
		return cached.(*CountryTable), nil
	}
	manager.recorder.IncCache(false)

	return manager.load(mode)
}

// Reload drops every cached table and reads all enabled modes again.
// The previous tables stay in use if any read fails.
func (manager *Manager) Reload() error {
	fresh := make(map[Mode]*CountryTable, len(manager.config.Modes))
	for _, mode := range manager.config.Modes {
		table, err := LoadTables(manager.config, mode, manager.logger)
		if err != nil {
			return fmt.Errorf("reloading %s tables: %w", mode, err)
		}
		fresh[mode] = table
	}

	manager.loadMu.Lock()
	defer manager.loadMu.Unlock()
	manager.cache.Flush()
	for mode, table := range fresh {
		manager.cache.Set(mode.String(), table, cache.DefaultExpiration)
		manager.lastGood[mode] = table
	}
	logging.LogOperation(manager.logger, "result_tables_reloaded", slog.Int("modes", len(fresh)))
	return nil
}

func (manager *Manager) load(mode Mode) (*CountryTable, error) {
	manager.loadMu.Lock()
	defer manager.loadMu.Unlock()

	// Another request may have loaded it while we waited.
	if cached, found := manager.cache.Get(mode.String()); found {
		return cached.(*CountryTable), nil
	}

	start := time.Now()
	table, err := LoadTables(manager.config, mode, manager.logger)
	if err != nil {
		previous, ok := manager.lastGood[mode]
		if !ok {
			logging.LogError(manager.logger, "failed to load result tables", err, slog.String("mode", mode.String()))
			return nil, err
		}
		// Serve the previous tables until the files are readable again.
		logging.LogError(manager.logger, "failed to re-read result tables, keeping previous", err,
			slog.String("mode", mode.String()))
		manager.cache.Set(mode.String(), previous, cache.DefaultExpiration)
		return previous, nil
	}
	manager.recorder.ObserveTableLoad(mode.String(), len(table.All()), time.Since(start))
	manager.cache.Set(mode.String(), table, cache.DefaultExpiration)
	manager.lastGood[mode] = table
	return table, nil
}
