package domain

import (
	"time"
)

// Booking statuses are a convention only; the database accepts any string.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID                 string        `json:"id"`
	FlightID           string        `json:"flight_id"`
	PassengerID        string        `json:"passenger_id"`
	BookingDate        time.Time     `json:"booking_date"`
	Status             string        `json:"status"`
	SeatNumber         string        `json:"seat_number"`
	TotalPrice         float64       `json:"total_price"`
	BaggageAllowanceID *string       `json:"baggage_allowance_id"`
	CreatedAt          time.Time     `json:"created_at"`
	Flight             *FlightRef    `json:"flight,omitempty"`
	Passenger          *PassengerRef `json:"passenger,omitempty"`
}

func (b Booking) Key() string { return b.ID }

func (b Booking) SearchFields() []string {
	var passenger, flight string
	if b.Passenger != nil {
		passenger = b.Passenger.Name
	}
	if b.Flight != nil {
		flight = b.Flight.FlightNumber
	}
	return []string{passenger, flight, b.SeatNumber}
}

func (Booking) Headers() []string {
	return []string{"Booking ID", "Passenger", "Flight", "From", "To", "Seat", "Price", "Status", "Booking Date"}
}

func (b Booking) Cells() []string {
	var passenger string
	if b.Passenger != nil {
		passenger = b.Passenger.Name
	}
	var flight, from, to string
	if b.Flight != nil {
		flight, from, to = b.Flight.FlightNumber, b.Flight.SourceAirport, b.Flight.DestinationAirport
	}
	return []string{
		shortID(b.ID),
		passenger,
		flight,
		from,
		to,
		b.SeatNumber,
		formatMoney(b.TotalPrice),
		b.Status,
		b.BookingDate.Format(displayTime),
	}
}

// NewBooking takes total_price from the caller as-is.
type NewBooking struct {
	FlightID           string    `json:"flight_id" form:"flight_id" binding:"required"`
	PassengerID        string    `json:"passenger_id" form:"passenger_id" binding:"required"`
	SeatNumber         string    `json:"seat_number" form:"seat_number" binding:"required"`
	TotalPrice         float64   `json:"total_price" form:"total_price"`
	Status             string    `json:"status" form:"status"`
	BookingDate        time.Time `json:"booking_date" form:"booking_date" time_format:"2006-01-02T15:04"`
	BaggageAllowanceID string    `json:"baggage_allowance_id" form:"baggage_allowance_id"`
}

func (n NewBooking) Validate() error {
	if err := required(
		requiredField{"flight_id", n.FlightID},
		requiredField{"passenger_id", n.PassengerID},
		requiredField{"seat_number", n.SeatNumber},
	); err != nil {
		return err
	}
	return nonNegative("total_price", n.TotalPrice)
}

func (n NewBooking) StatusOrDefault() string {
	if n.Status == "" {
		return BookingStatusPending
	}
	return n.Status
}

// BookingDateOr returns the requested booking date, or now when unset.
func (n NewBooking) BookingDateOr(now time.Time) time.Time {
	if n.BookingDate.IsZero() {
		return now
	}
	return n.BookingDate
}

func (n NewBooking) BaggageAllowancePtr() *string { return optional(n.BaggageAllowanceID) }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
