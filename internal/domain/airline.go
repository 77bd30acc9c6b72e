package domain

type Airline struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Code string  `json:"code"`
	Logo *string `json:"logo"`
}

func (a Airline) Key() string { return a.ID }

func (a Airline) SearchFields() []string { return []string{a.Name, a.Code} }

func (Airline) Headers() []string { return []string{"Airline Name", "Code", "Logo"} }

func (a Airline) Cells() []string { return []string{a.Name, a.Code, deref(a.Logo)} }

// AirlineRef is the airline projection joined into a flight row.
type AirlineRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type NewAirline struct {
	Name string `json:"name" form:"name" binding:"required"`
	Code string `json:"code" form:"code" binding:"required"`
	Logo string `json:"logo" form:"logo"`
}

func (n NewAirline) Validate() error {
	return required(
		requiredField{"name", n.Name},
		requiredField{"code", n.Code},
	)
}

// LogoPtr returns the logo as a nullable column value.
func (n NewAirline) LogoPtr() *string { return optional(n.Logo) }
