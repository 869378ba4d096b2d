package entity

// PricePoint is one entry of the moving-average history.
type PricePoint struct {
	Period        string   `json:"period,omitempty"`
	MovingAverage *float64 `json:"moving_average"`
}

// PriceProfile carries everything the price analyzer reads.
// MovingAverages must be in chronological order, oldest first.
type PriceProfile struct {
	CurrentPrice   float64      `json:"current_price"`
	MovingAverages []PricePoint `json:"moving_averages"`
	StdDeviation   *float64     `json:"std_deviation,omitempty"`
	QuantitySacks  float64      `json:"quantity_sacks"`
	CoffeeState    CoffeeState  `json:"coffee_state"`
}
