// Package units converts raw telemetry magnitudes into human-scaled values
// with unit labels. Pure functions, no dependencies.
package units

import "fmt"

// Energy unit multiples. 1 MEU = 10,000,000 EU.
const (
	EUPerKEU = 1_000
	EUPerMEU = 10_000_000
)

// Kelvin multiples for thermal display.
const (
	KPerMK = 1e6
	KPerGK = 1e9
)

// minMagnitude is the smallest scaled value a non-base unit may display.
const minMagnitude = 0.1

// ScaleEnergy converts a raw EU quantity into the largest unit whose scaled
// magnitude is at least 0.1. Falls through to raw EU, which accepts any
// value including zero.
func ScaleEnergy(raw float64) (float64, string) {
	if v := raw / EUPerMEU; v >= minMagnitude {
		return v, "MEU"
	}
	if v := raw / EUPerKEU; v >= minMagnitude {
		return v, "KEU"
	}
	return raw, "EU"
}

// ScaleTemperature converts raw kelvin into the largest unit whose scaled
// magnitude is at least 0.1. Falls through to raw kelvin.
func ScaleTemperature(raw float64) (float64, string) {
	if v := raw / KPerGK; v >= minMagnitude {
		return v, "GK"
	}
	if v := raw / KPerMK; v >= minMagnitude {
		return v, "MK"
	}
	return raw, "K"
}

// FormatEnergy renders a raw EU quantity as a display string, scaled.
func FormatEnergy(raw float64) string {
	v, unit := ScaleEnergy(raw)
	return fmt.Sprintf("%.2f %s", v, unit)
}

// FormatTemperature renders raw kelvin as a display string, scaled.
func FormatTemperature(raw float64) string {
	v, unit := ScaleTemperature(raw)
	return fmt.Sprintf("%.2f %s", v, unit)
}
