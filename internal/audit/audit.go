// Package audit records consumed record events.
package audit

import (
	"context"
	"sync"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/kafka"
	"github.com/Domenick1991/flightdb/internal/metrics"
	"github.com/rs/zerolog"
)

type Sink struct {
	logger zerolog.Logger

	mu     sync.Mutex
	counts map[domain.Table]int
}

func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{
		logger: logger.With().Str("component", "audit").Logger(),
		counts: make(map[domain.Table]int),
	}
}

func (s *Sink) Record(_ context.Context, event kafka.RecordEvent) error {
	s.mu.Lock()
	s.counts[event.Table]++
	s.mu.Unlock()

	metrics.IncEventConsumed(string(event.Table))
	s.logger.Info().
		Str("type", event.Type).
		Str("table", string(event.Table)).
		Str("key", event.Key).
		Time("at", event.At).
		Msg("record event")
	return nil
}

// Counts returns how many events were recorded per table since start.
func (s *Sink) Counts() map[domain.Table]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Table]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}
