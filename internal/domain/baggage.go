package domain

type BaggageAllowance struct {
	ID              string  `json:"id"`
	CheckedBaggage  string  `json:"checked_baggage"`
	ExtraBaggageFee float64 `json:"extra_baggage_fee"`
	CabinBaggage    string  `json:"cabin_baggage"`
}

func (b BaggageAllowance) Key() string { return b.ID }

func (b BaggageAllowance) SearchFields() []string {
	return []string{b.CheckedBaggage, b.CabinBaggage}
}

func (BaggageAllowance) Headers() []string {
	return []string{"Allowance ID", "Checked", "Cabin", "Extra Fee"}
}

func (b BaggageAllowance) Cells() []string {
	return []string{b.ID, b.CheckedBaggage, b.CabinBaggage, formatMoney(b.ExtraBaggageFee)}
}

type NewBaggageAllowance struct {
	CheckedBaggage  string  `json:"checked_baggage" form:"checked_baggage" binding:"required"`
	ExtraBaggageFee float64 `json:"extra_baggage_fee" form:"extra_baggage_fee"`
	CabinBaggage    string  `json:"cabin_baggage" form:"cabin_baggage" binding:"required"`
}

func (n NewBaggageAllowance) Validate() error {
	if err := required(
		requiredField{"checked_baggage", n.CheckedBaggage},
		requiredField{"cabin_baggage", n.CabinBaggage},
	); err != nil {
		return err
	}
	return nonNegative("extra_baggage_fee", n.ExtraBaggageFee)
}
