package domain

import "time"

const TicketStatusIssued = "issued"

type Ticket struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	IssueDate time.Time `json:"issue_date"`
	Status    string    `json:"status"`
}

func (t Ticket) Key() string { return t.ID }

func (t Ticket) SearchFields() []string { return []string{t.ID, t.BookingID, t.Status} }

func (Ticket) Headers() []string { return []string{"Ticket ID", "Booking ID", "Issued", "Status"} }

func (t Ticket) Cells() []string {
	return []string{t.ID, t.BookingID, t.IssueDate.Format(displayTime), t.Status}
}

type NewTicket struct {
	BookingID string    `json:"booking_id" form:"booking_id" binding:"required"`
	IssueDate time.Time `json:"issue_date" form:"issue_date" time_format:"2006-01-02T15:04"`
	Status    string    `json:"status" form:"status"`
}

func (n NewTicket) Validate() error {
	return required(requiredField{"booking_id", n.BookingID})
}

func (n NewTicket) StatusOrDefault() string {
	if n.Status == "" {
		return TicketStatusIssued
	}
	return n.Status
}

func (n NewTicket) IssueDateOr(now time.Time) time.Time {
	if n.IssueDate.IsZero() {
		return now
	}
	return n.IssueDate
}
