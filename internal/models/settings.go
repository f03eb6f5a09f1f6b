package models

// SettingsID is the id of the single settings document.
const SettingsID = 1

// Settings is a singleton. AvgConsumption, DailyDistance and ServiceInterval are
// legacy fields kept for schema compatibility; the calculator derives consumption
// from the log history instead.
type Settings struct {
	ID              int64   `bson:"_id" json:"id"`
	TankCapacity    float64 `bson:"tank_capacity" json:"tankCapacity"`
	AvgConsumption  float64 `bson:"avg_consumption" json:"avgConsumption"`
	DailyDistance   float64 `bson:"daily_distance" json:"dailyDistance"`
	FuelLowKm       float64 `bson:"fuel_low_km" json:"fuelLowKm"`
	ServiceInterval float64 `bson:"service_interval" json:"serviceInterval"`
}

// DefaultSettings returns the first-run settings document.
func DefaultSettings() *Settings {
	return &Settings{
		ID:              SettingsID,
		TankCapacity:    10.0,
		AvgConsumption:  0.0,
		DailyDistance:   0.0,
		FuelLowKm:       50.0,
		ServiceInterval: 1000.0,
	}
}
