package dashboard

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/rs/zerolog"
)

// Stat is one dashboard card. Ready is false when the count could not be
// fetched.
type Stat struct {
	Table       domain.Table `json:"table"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Value       int64        `json:"value"`
	Ready       bool         `json:"ready"`
}

type card struct {
	table       domain.Table
	label       string
	description string
}

var cards = []card{
	{domain.TableFlight, "Total Flights", "Active flights in the system"},
	{domain.TableBooking, "Total Bookings", "Bookings made by passengers"},
	{domain.TableAirline, "Airlines", "Partner airlines"},
	{domain.TableAirport, "Airports", "Airports served"},
}

type DashboardUseCase interface {
	Stats(ctx context.Context) []Stat
}

type Service struct {
	counter repository.Counter
	logger  zerolog.Logger
}

func NewService(counter repository.Counter, logger zerolog.Logger) *Service {
	return &Service{
		counter: counter,
		logger:  logger.With().Str("component", "dashboard").Logger(),
	}
}

// Stats counts each dashboard table independently; one failure does not
// hide the others.
func (s *Service) Stats(ctx context.Context) []Stat {
	out := make([]Stat, 0, len(cards))
	for _, c := range cards {
		stat := Stat{Table: c.table, Label: c.label, Description: c.description}
		n, err := s.counter.Count(ctx, c.table)
		if err != nil {
			s.logger.Error().Err(err).Str("table", string(c.table)).Msg("count failed")
		} else {
			stat.Value = n
			stat.Ready = true
		}
		out = append(out, stat)
	}
	return out
}

var _ DashboardUseCase = (*Service)(nil)
