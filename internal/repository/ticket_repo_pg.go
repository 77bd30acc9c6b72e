package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/flightdb/internal/domain"
)

type PGTicketRepository struct {
	db  DB
	now func() time.Time
}

func NewTicketRepository(db DB) TicketRepository {
	return &PGTicketRepository{db: db, now: time.Now}
}

func (r *PGTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, issue_date, status FROM ticket ORDER BY issue_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.IssueDate, &t.Status); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) Create(ctx context.Context, input domain.NewTicket) (*domain.Ticket, error) {
	t := domain.Ticket{
		BookingID: input.BookingID,
		IssueDate: input.IssueDateOr(r.now()),
		Status:    input.StatusOrDefault(),
	}
	if err := r.db.QueryRow(ctx, `INSERT INTO ticket (booking_id, issue_date, status) VALUES ($1, $2, $3) RETURNING id`,
		t.BookingID, t.IssueDate, t.Status).Scan(&t.ID); err != nil {
		return nil, err
	}
	return &t, nil
}

var _ TicketRepository = (*PGTicketRepository)(nil)
