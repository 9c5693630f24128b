package models

// Airport is immutable reference data.
type Airport struct {
	AirportCode string `json:"airport_code"`
	AirportName string `json:"airport_name"`
}

// SeatClassConfig describes one fare class offered on a plane: its
// name, how many seats the cabin has, and the ratio applied to a
// flight's base price to obtain the class's unit price.
type SeatClassConfig struct {
	ClassName  string  `json:"class_name"`
	SeatCount  int     `json:"seat_count"`
	PriceRatio float64 `json:"price_ratio"`
}

// Plane is immutable reference data; its seat class configuration is
// the template every flight flown by it derives fare classes from.
type Plane struct {
	PlaneCode   string            `json:"plane_code"`
	PlaneName   string            `json:"plane_name"`
	SeatClasses []SeatClassConfig `json:"seat_classes"`
}
