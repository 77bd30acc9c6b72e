package domain

import (
	"fmt"
	"strconv"
	"time"
)

const FlightStatusScheduled = "scheduled"

type Flight struct {
	ID                 string      `json:"id"`
	AirlineID          string      `json:"airline_id"`
	FlightNumber       string      `json:"flight_number"`
	DepartureTime      time.Time   `json:"departure_time"`
	ArrivalTime        time.Time   `json:"arrival_time"`
	SourceAirport      string      `json:"source_airport"`
	DestinationAirport string      `json:"destination_airport"`
	Aircraft           string      `json:"aircraft"`
	TotalSeats         int         `json:"total_seats"`
	AvailableSeats     int         `json:"available_seats"`
	Price              float64     `json:"price"`
	Status             string      `json:"status"`
	CreatedAt          time.Time   `json:"created_at"`
	Airline            *AirlineRef `json:"airline,omitempty"`
}

func (f Flight) Key() string { return f.ID }

func (f Flight) SearchFields() []string {
	return []string{f.FlightNumber, f.SourceAirport, f.DestinationAirport}
}

func (Flight) Headers() []string {
	return []string{"Flight No.", "Airline", "From", "To", "Departure", "Arrival", "Status", "Seats (Avail/Total)", "Price"}
}

func (f Flight) Cells() []string {
	airline := ""
	if f.Airline != nil {
		airline = f.Airline.Name
	}
	return []string{
		f.FlightNumber,
		airline,
		f.SourceAirport,
		f.DestinationAirport,
		f.DepartureTime.Format(displayTime),
		f.ArrivalTime.Format(displayTime),
		f.Status,
		fmt.Sprintf("%d/%d", f.AvailableSeats, f.TotalSeats),
		formatMoney(f.Price),
	}
}

// FlightRef is the flight projection joined into a booking row.
type FlightRef struct {
	FlightNumber       string `json:"flight_number"`
	SourceAirport      string `json:"source_airport"`
	DestinationAirport string `json:"destination_airport"`
}

type NewFlight struct {
	AirlineID          string    `json:"airline_id" form:"airline_id" binding:"required"`
	FlightNumber       string    `json:"flight_number" form:"flight_number" binding:"required"`
	SourceAirport      string    `json:"source_airport" form:"source_airport" binding:"required"`
	DestinationAirport string    `json:"destination_airport" form:"destination_airport" binding:"required"`
	DepartureTime      time.Time `json:"departure_time" form:"departure_time" time_format:"2006-01-02T15:04" binding:"required"`
	ArrivalTime        time.Time `json:"arrival_time" form:"arrival_time" time_format:"2006-01-02T15:04" binding:"required"`
	Aircraft           string    `json:"aircraft" form:"aircraft" binding:"required"`
	TotalSeats         int       `json:"total_seats" form:"total_seats"`
	AvailableSeats     int       `json:"available_seats" form:"available_seats"`
	Price              float64   `json:"price" form:"price"`
	Status             string    `json:"status" form:"status"`
}

func (n NewFlight) Validate() error {
	if err := required(
		requiredField{"airline_id", n.AirlineID},
		requiredField{"flight_number", n.FlightNumber},
		requiredField{"source_airport", n.SourceAirport},
		requiredField{"destination_airport", n.DestinationAirport},
		requiredField{"aircraft", n.Aircraft},
	); err != nil {
		return err
	}
	if n.DepartureTime.IsZero() || n.ArrivalTime.IsZero() {
		return fmt.Errorf("%w: missing departure_time or arrival_time", ErrValidation)
	}
	if err := nonNegative("total_seats", float64(n.TotalSeats)); err != nil {
		return err
	}
	if err := nonNegative("available_seats", float64(n.AvailableSeats)); err != nil {
		return err
	}
	return nonNegative("price", n.Price)
}

// StatusOrDefault returns the status to store for a new flight.
func (n NewFlight) StatusOrDefault() string {
	if n.Status == "" {
		return FlightStatusScheduled
	}
	return n.Status
}

func formatMoney(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}
