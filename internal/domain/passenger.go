package domain

import "time"

type Passenger struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	PassportNumber *string   `json:"passport_number"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p Passenger) Key() string { return p.ID }

func (p Passenger) SearchFields() []string {
	return []string{p.Name, p.Email, deref(p.PassportNumber)}
}

func (Passenger) Headers() []string {
	return []string{"Passenger ID", "Name", "Email", "Phone", "Passport"}
}

func (p Passenger) Cells() []string {
	return []string{p.ID, p.Name, p.Email, deref(p.Phone), deref(p.PassportNumber)}
}

// PassengerRef is the passenger projection joined into a booking row.
type PassengerRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type NewPassenger struct {
	UserID         string `json:"user_id" form:"user_id" binding:"required"`
	Name           string `json:"name" form:"name" binding:"required"`
	Email          string `json:"email" form:"email" binding:"required"`
	Phone          string `json:"phone" form:"phone"`
	PassportNumber string `json:"passport_number" form:"passport_number"`
}

func (n NewPassenger) Validate() error {
	return required(
		requiredField{"user_id", n.UserID},
		requiredField{"name", n.Name},
		requiredField{"email", n.Email},
	)
}

func (n NewPassenger) PhonePtr() *string { return optional(n.Phone) }

func (n NewPassenger) PassportPtr() *string { return optional(n.PassportNumber) }
