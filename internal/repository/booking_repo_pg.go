package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGBookingRepository struct {
	db  DB
	now func() time.Time
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db, now: time.Now}
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.flight_id, b.passenger_id, b.booking_date, b.status, b.seat_number,
		b.total_price, b.baggage_allowance_id, b.created_at,
		f.flight_number, f.source_airport, f.destination_airport,
		p.name, p.email
		FROM booking b
		LEFT JOIN flight f ON f.id = b.flight_id
		LEFT JOIN passenger p ON p.id = b.passenger_id
		ORDER BY b.booking_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			b                    domain.Booking
			flightNumber         *string
			source, destination  *string
			passengerName, email *string
		)
		if err := rows.Scan(&b.ID, &b.FlightID, &b.PassengerID, &b.BookingDate, &b.Status, &b.SeatNumber,
			&b.TotalPrice, &b.BaggageAllowanceID, &b.CreatedAt,
			&flightNumber, &source, &destination,
			&passengerName, &email); err != nil {
			return nil, err
		}
		if flightNumber != nil {
			b.Flight = &domain.FlightRef{
				FlightNumber:       *flightNumber,
				SourceAirport:      valueOf(source),
				DestinationAirport: valueOf(destination),
			}
		}
		if passengerName != nil {
			b.Passenger = &domain.PassengerRef{Name: *passengerName, Email: valueOf(email)}
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Create(ctx context.Context, input domain.NewBooking) (*domain.Booking, error) {
	b := domain.Booking{
		FlightID:           input.FlightID,
		PassengerID:        input.PassengerID,
		BookingDate:        input.BookingDateOr(r.now()),
		Status:             input.StatusOrDefault(),
		SeatNumber:         input.SeatNumber,
		TotalPrice:         input.TotalPrice,
		BaggageAllowanceID: input.BaggageAllowancePtr(),
	}
	if err := r.db.QueryRow(ctx, `INSERT INTO booking (flight_id, passenger_id, booking_date, status, seat_number,
		total_price, baggage_allowance_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		b.FlightID, b.PassengerID, b.BookingDate, b.Status, b.SeatNumber, b.TotalPrice, b.BaggageAllowanceID).
		Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ BookingRepository = (*PGBookingRepository)(nil)
