// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, converting datasheet formula results into physic units.
package common

import "periph.io/x/conn/v3/physic"

// FromCelsius converts a floating point °C value, as produced by most
// datasheet conversion formulas, to a physic.Temperature.
func FromCelsius(c float64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Celsius))
}

// FromPercentRH converts a floating point %RH value to a
// physic.RelativeHumidity.
func FromPercentRH(rh float64) physic.RelativeHumidity {
	return physic.RelativeHumidity(rh * float64(physic.PercentRH))
}

// ClampHumidity limits h to the physically meaningful 0-100%RH range.
func ClampHumidity(h physic.RelativeHumidity) physic.RelativeHumidity {
	if h < 0 {
		return 0
	}
	if h > 100*physic.PercentRH {
		return 100 * physic.PercentRH
	}
	return h
}
