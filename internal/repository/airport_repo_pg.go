package repository

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGAirportRepository struct {
	db DB
}

func NewAirportRepository(db DB) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT airport_code, name, city, location FROM airport ORDER BY airport_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.AirportCode, &a.Name, &a.City, &a.Location); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) Create(ctx context.Context, input domain.NewAirport) (*domain.Airport, error) {
	a := domain.Airport{AirportCode: input.AirportCode, Name: input.Name, City: input.City, Location: input.Location}
	if _, err := r.db.Exec(ctx, `INSERT INTO airport (airport_code, name, city, location) VALUES ($1, $2, $3, $4)`,
		a.AirportCode, a.Name, a.City, a.Location); err != nil {
		return nil, err
	}
	return &a, nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
