package models

// FuelLogEntry is one fill-up. Entries are immutable once created; the ID is the
// unix-millisecond creation timestamp, which keeps ids unique and roughly monotonic.
type FuelLogEntry struct {
	ID       int64   `bson:"_id" json:"id"`
	Date     string  `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time     string  `bson:"time" json:"time" validate:"required,datetime=15:04"`
	Liter    float64 `bson:"liter" json:"liter" validate:"required,gt=0"`
	Price    float64 `bson:"price" json:"price" validate:"gte=0"`
	Odometer float64 `bson:"odometer" json:"odometer" validate:"gte=0"`
	FuelType string  `bson:"fuel_type" json:"fuelType"`

	// Derived at insert time from the previous entry, kept for display.
	Consumption float64 `bson:"consumption" json:"consumption"`
	Prediction  float64 `bson:"prediction" json:"prediction"`
}

// FuelStats holds the consumption/range metrics derived from the fuel log history.
// It is recomputed on every query and never persisted.
type FuelStats struct {
	AvgConsumption         float64 `json:"avgConsumption"`         // km per liter, 2 decimals
	PredictedRange         float64 `json:"predictedRange"`         // km on a full tank, 1 decimal
	RemainingRange         float64 `json:"remainingRange"`         // km left on remaining fuel, 1 decimal
	RemainingFuelFromRange float64 `json:"remainingFuelFromRange"` // liters, 1 decimal
}
