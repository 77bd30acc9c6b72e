package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation wraps every rejection of an insert input.
var ErrValidation = errors.New("validation failed")

// Table names as they exist in the database.
type Table string

const (
	TableAirline          Table = "airline"
	TableAirport          Table = "airport"
	TableFlight           Table = "flight"
	TablePassenger        Table = "passenger"
	TableBooking          Table = "booking"
	TableTicket           Table = "ticket"
	TableBaggageAllowance Table = "baggage_allowance"
)

// Tables lists every known table in a stable order.
var Tables = []Table{
	TableAirline,
	TableAirport,
	TableFlight,
	TablePassenger,
	TableBooking,
	TableTicket,
	TableBaggageAllowance,
}

func (t Table) Valid() bool {
	for _, known := range Tables {
		if t == known {
			return true
		}
	}
	return false
}

// Record is implemented by every row type shown in a list view.
type Record interface {
	Key() string
	SearchFields() []string
	Headers() []string
	Cells() []string
}

// Input is implemented by every insert payload.
type Input interface {
	Validate() error
}

type requiredField struct {
	name  string
	value string
}

func required(fields ...requiredField) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func nonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, name)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

const displayTime = "2006-01-02 15:04"
