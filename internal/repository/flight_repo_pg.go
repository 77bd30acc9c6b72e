package repository

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGFlightRepository struct {
	db DB
}

func NewFlightRepository(db DB) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.airline_id, f.flight_number, f.departure_time, f.arrival_time,
		f.source_airport, f.destination_airport, f.aircraft, f.total_seats, f.available_seats, f.price, f.status,
		f.created_at, a.name, a.code
		FROM flight f
		LEFT JOIN airline a ON a.id = f.airline_id
		ORDER BY f.departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var (
			f                        domain.Flight
			airlineName, airlineCode *string
		)
		if err := rows.Scan(&f.ID, &f.AirlineID, &f.FlightNumber, &f.DepartureTime, &f.ArrivalTime,
			&f.SourceAirport, &f.DestinationAirport, &f.Aircraft, &f.TotalSeats, &f.AvailableSeats, &f.Price, &f.Status,
			&f.CreatedAt, &airlineName, &airlineCode); err != nil {
			return nil, err
		}
		if airlineName != nil {
			f.Airline = &domain.AirlineRef{Name: *airlineName}
			if airlineCode != nil {
				f.Airline.Code = *airlineCode
			}
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, input domain.NewFlight) (*domain.Flight, error) {
	f := domain.Flight{
		AirlineID:          input.AirlineID,
		FlightNumber:       input.FlightNumber,
		DepartureTime:      input.DepartureTime,
		ArrivalTime:        input.ArrivalTime,
		SourceAirport:      input.SourceAirport,
		DestinationAirport: input.DestinationAirport,
		Aircraft:           input.Aircraft,
		TotalSeats:         input.TotalSeats,
		AvailableSeats:     input.AvailableSeats,
		Price:              input.Price,
		Status:             input.StatusOrDefault(),
	}
	if err := r.db.QueryRow(ctx, `INSERT INTO flight (airline_id, flight_number, departure_time, arrival_time,
		source_airport, destination_airport, aircraft, total_seats, available_seats, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		f.AirlineID, f.FlightNumber, f.DepartureTime, f.ArrivalTime, f.SourceAirport, f.DestinationAirport,
		f.Aircraft, f.TotalSeats, f.AvailableSeats, f.Price, f.Status).Scan(&f.ID, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
