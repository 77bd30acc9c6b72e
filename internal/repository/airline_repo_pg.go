package repository

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGAirlineRepository struct {
	db DB
}

func NewAirlineRepository(db DB) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, code, logo FROM airline ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.Logo); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAirlineRepository) Create(ctx context.Context, input domain.NewAirline) (*domain.Airline, error) {
	a := domain.Airline{Name: input.Name, Code: input.Code, Logo: input.LogoPtr()}
	if err := r.db.QueryRow(ctx, `INSERT INTO airline (name, code, logo) VALUES ($1, $2, $3) RETURNING id`,
		a.Name, a.Code, a.Logo).Scan(&a.ID); err != nil {
		return nil, err
	}
	return &a, nil
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
