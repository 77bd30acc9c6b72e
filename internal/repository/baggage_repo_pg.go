package repository

import (
	"context"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGBaggageAllowanceRepository struct {
	db DB
}

func NewBaggageAllowanceRepository(db DB) BaggageAllowanceRepository {
	return &PGBaggageAllowanceRepository{db: db}
}

func (r *PGBaggageAllowanceRepository) List(ctx context.Context) ([]domain.BaggageAllowance, error) {
	rows, err := r.db.Query(ctx, `SELECT id, checked_baggage, extra_baggage_fee, cabin_baggage FROM baggage_allowance ORDER BY checked_baggage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allowances := make([]domain.BaggageAllowance, 0)
	for rows.Next() {
		var b domain.BaggageAllowance
		if err := rows.Scan(&b.ID, &b.CheckedBaggage, &b.ExtraBaggageFee, &b.CabinBaggage); err != nil {
			return nil, err
		}
		allowances = append(allowances, b)
	}
	return allowances, rows.Err()
}

func (r *PGBaggageAllowanceRepository) Create(ctx context.Context, input domain.NewBaggageAllowance) (*domain.BaggageAllowance, error) {
	b := domain.BaggageAllowance{
		CheckedBaggage:  input.CheckedBaggage,
		ExtraBaggageFee: input.ExtraBaggageFee,
		CabinBaggage:    input.CabinBaggage,
	}
	if err := r.db.QueryRow(ctx, `INSERT INTO baggage_allowance (checked_baggage, extra_baggage_fee, cabin_baggage)
		VALUES ($1, $2, $3) RETURNING id`,
		b.CheckedBaggage, b.ExtraBaggageFee, b.CabinBaggage).Scan(&b.ID); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ BaggageAllowanceRepository = (*PGBaggageAllowanceRepository)(nil)
