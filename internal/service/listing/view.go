// Package listing implements the fetch, filter and insert cycle shared by
// every entity page.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/filter"
	"github.com/Domenick1991/flightdb/internal/kafka"
	"github.com/Domenick1991/flightdb/internal/metrics"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/rs/zerolog"
)

// ErrStore marks failures reported by the backing store.
var ErrStore = errors.New("store failure")

type Cache interface {
	GetList(ctx context.Context, table domain.Table, dest any) (bool, error)
	SetList(ctx context.Context, table domain.Table, rows any) error
	Invalidate(ctx context.Context, table domain.Table) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Options carries the optional collaborators of a View. Nil members are
// skipped.
type Options struct {
	Cache    Cache
	Producer Producer
	Topic    string
	Logger   zerolog.Logger
	Now      func() time.Time

	// PublishTimeout bounds each record event publish. Defaults to
	// DefaultPublishTimeout.
	PublishTimeout time.Duration
}

const DefaultPublishTimeout = 2 * time.Second

// Snapshot is the state a page renders from.
type Snapshot[T any] struct {
	Rows    []T
	Loading bool
	Loaded  bool
}

// View keeps the last successfully fetched rows of one table. A failed fetch
// leaves them in place.
type View[T domain.Record, In domain.Input] struct {
	table  domain.Table
	source repository.Repository[T, In]
	opts   Options
	logger zerolog.Logger

	mu      sync.RWMutex
	rows    []T
	loading bool
	loaded  bool

	// gen changes after every successful insert. A fetch that started under
	// an older gen must not write its rows to the view or the cache.
	genMu sync.Mutex
	gen   uint64
}

func NewView[T domain.Record, In domain.Input](table domain.Table, source repository.Repository[T, In], opts Options) *View[T, In] {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = DefaultPublishTimeout
	}
	return &View[T, In]{
		table:  table,
		source: source,
		opts:   opts,
		logger: opts.Logger.With().Str("component", "listing").Str("table", string(table)).Logger(),
	}
}

func (v *View[T, In]) Table() domain.Table { return v.table }

func (v *View[T, In]) Snapshot() Snapshot[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot[T]{Rows: v.copyRows(), Loading: v.loading, Loaded: v.loaded}
}

// Load fetches all rows. On failure it logs, keeps the previous rows and
// returns them together with the error.
func (v *View[T, In]) Load(ctx context.Context) ([]T, error) {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	gen := v.generation()
	rows, err := v.fetch(ctx, gen)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		metrics.IncFetchFailure(string(v.table))
		v.logger.Error().Err(err).Int("stale_rows", len(v.rows)).Msg("fetch failed")
		return v.copyRows(), fmt.Errorf("load %s: %w: %w", v.table, ErrStore, err)
	}
	if gen != v.generation() {
		v.logger.Debug().Msg("discarding rows fetched before an insert")
		return v.copyRows(), nil
	}
	v.rows = rows
	v.loaded = true
	return v.copyRows(), nil
}

// Filter applies term to the rows currently held.
func (v *View[T, In]) Filter(term string) []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return filter.Apply(v.rows, term, func(row T) []string { return row.SearchFields() })
}

// Search loads and then filters. The error is the load error, if any; the
// rows are still usable.
func (v *View[T, In]) Search(ctx context.Context, term string) ([]T, error) {
	_, err := v.Load(ctx)
	return v.Filter(term), err
}

// Create validates and inserts input, then reloads the view.
func (v *View[T, In]) Create(ctx context.Context, input In) (*T, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := v.source.Create(ctx, input)
	if err != nil {
		v.logger.Error().Err(err).Msg("insert failed")
		return nil, fmt.Errorf("create %s: %w: %w", v.table, ErrStore, err)
	}
	metrics.IncRecordCreated(string(v.table))

	v.genMu.Lock()
	v.gen++
	if v.opts.Cache != nil {
		if err := v.opts.Cache.Invalidate(ctx, v.table); err != nil {
			v.logger.Warn().Err(err).Msg("invalidate list cache")
		}
	}
	v.genMu.Unlock()
	v.publish(ctx, *created)

	// Load logs its own failure; the insert itself succeeded.
	_, _ = v.Load(ctx)
	return created, nil
}

func (v *View[T, In]) generation() uint64 {
	v.genMu.Lock()
	defer v.genMu.Unlock()
	return v.gen
}

func (v *View[T, In]) fetch(ctx context.Context, gen uint64) ([]T, error) {
	if v.opts.Cache != nil {
		var cached []T
		ok, err := v.opts.Cache.GetList(ctx, v.table, &cached)
		if err != nil {
			v.logger.Warn().Err(err).Msg("read list cache")
		} else if ok {
			return cached, nil
		}
	}

	rows, err := v.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if v.opts.Cache != nil {
		v.genMu.Lock()
		if gen == v.gen {
			if err := v.opts.Cache.SetList(ctx, v.table, rows); err != nil {
				v.logger.Warn().Err(err).Msg("write list cache")
			}
		}
		v.genMu.Unlock()
	}
	return rows, nil
}

func (v *View[T, In]) publish(ctx context.Context, record T) {
	if v.opts.Producer == nil || v.opts.Topic == "" {
		return
	}
	event := kafka.RecordEvent{
		Type:  kafka.EventRecordCreated,
		Table: v.table,
		Key:   record.Key(),
		At:    v.opts.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(ctx, v.opts.PublishTimeout)
	defer cancel()
	if err := v.opts.Producer.Publish(ctx, v.opts.Topic, record.Key(), event); err != nil {
		v.logger.Warn().Err(err).Str("key", record.Key()).Msg("publish record event")
	}
}

func (v *View[T, In]) copyRows() []T {
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}
