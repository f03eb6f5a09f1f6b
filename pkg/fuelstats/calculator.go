package fuelstats

import (
	"math"

	"ojolmate-backend/internal/models"
)

// Calculate derives consumption and range metrics from a fuel log history.
//
// logs must be ordered most-recent-first, as the repository returns them.
// remainingFuel overrides the "fuel currently in the tank" estimate; when nil, the
// liter amount of the most recent entry is used. Fewer than two entries yield the
// zero value: there is no pair to measure consumption from.
func Calculate(logs []models.FuelLogEntry, tankCapacity float64, remainingFuel *float64) models.FuelStats {
	if len(logs) < 2 {
		return models.FuelStats{}
	}

	// reverse to chronological order
	chrono := make([]models.FuelLogEntry, len(logs))
	for i, l := range logs {
		chrono[len(logs)-1-i] = l
	}

	var totalKm, totalLiter float64
	for i := 1; i < len(chrono); i++ {
		km := chrono[i].Odometer - chrono[i-1].Odometer
		if km <= 0 {
			// corrected or out-of-order odometer entry, skip the pair entirely
			continue
		}
		totalKm += km
		totalLiter += chrono[i].Liter
	}

	var avgConsumption float64
	if totalLiter > 0 {
		avgConsumption = totalKm / totalLiter
	}
	predictedRange := avgConsumption * tankCapacity

	remaining := chrono[len(chrono)-1].Liter
	if remainingFuel != nil {
		remaining = *remainingFuel
	}
	remainingRange := avgConsumption * remaining

	var remainingFuelFromRange float64
	if avgConsumption > 0 {
		remainingFuelFromRange = remainingRange / avgConsumption
	}

	// rounding happens only here, never inside the accumulation
	return models.FuelStats{
		AvgConsumption:         round(avgConsumption, 2),
		PredictedRange:         round(predictedRange, 1),
		RemainingRange:         round(remainingRange, 1),
		RemainingFuelFromRange: round(remainingFuelFromRange, 1),
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
