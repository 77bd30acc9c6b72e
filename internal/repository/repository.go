package repository

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the table clients use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is the table-level client every list view fetches from and
// inserts into.
type Repository[T any, In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, input In) (*T, error)
}

type (
	AirlineRepository          = Repository[domain.Airline, domain.NewAirline]
	AirportRepository          = Repository[domain.Airport, domain.NewAirport]
	FlightRepository           = Repository[domain.Flight, domain.NewFlight]
	PassengerRepository        = Repository[domain.Passenger, domain.NewPassenger]
	BookingRepository          = Repository[domain.Booking, domain.NewBooking]
	TicketRepository           = Repository[domain.Ticket, domain.NewTicket]
	BaggageAllowanceRepository = Repository[domain.BaggageAllowance, domain.NewBaggageAllowance]
)
