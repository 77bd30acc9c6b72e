package repository

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGPassengerRepository struct {
	db DB
}

func NewPassengerRepository(db DB) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, name, email, phone, passport_number, created_at FROM passenger ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.PassportNumber, &p.CreatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) Create(ctx context.Context, input domain.NewPassenger) (*domain.Passenger, error) {
	p := domain.Passenger{
		UserID:         input.UserID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.PhonePtr(),
		PassportNumber: input.PassportPtr(),
	}
	if err := r.db.QueryRow(ctx, `INSERT INTO passenger (user_id, name, email, phone, passport_number)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		p.UserID, p.Name, p.Email, p.Phone, p.PassportNumber).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
