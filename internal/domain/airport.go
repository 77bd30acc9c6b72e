package domain

type Airport struct {
	AirportCode string `json:"airport_code"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Location    string `json:"location"`
}

func (a Airport) Key() string { return a.AirportCode }

func (a Airport) SearchFields() []string { return []string{a.Name, a.AirportCode, a.City} }

func (Airport) Headers() []string { return []string{"Code", "Airport Name", "City", "Location"} }

func (a Airport) Cells() []string { return []string{a.AirportCode, a.Name, a.City, a.Location} }

type NewAirport struct {
	AirportCode string `json:"airport_code" form:"airport_code" binding:"required"`
	Name        string `json:"name" form:"name" binding:"required"`
	City        string `json:"city" form:"city" binding:"required"`
	Location    string `json:"location" form:"location" binding:"required"`
}

func (n NewAirport) Validate() error {
	return required(
		requiredField{"airport_code", n.AirportCode},
		requiredField{"name", n.Name},
		requiredField{"city", n.City},
		requiredField{"location", n.Location},
	)
}
