// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7005

// SensorAddress is the fixed I²C address of the Si7005.
const SensorAddress uint16 = 0x40

const (
	regStatus byte = 0x00
	regData   byte = 0x01
	regConfig byte = 0x03
	regID     byte = 0x11

	// STATUS
	statusNotReady byte = 1 << 0

	// CONFIG
	configStart byte = 1 << 0
	configHeat  byte = 1 << 1
	configTemp  byte = 1 << 4
	configFast  byte = 1 << 5

	// Value of the ID register when a chip is present.
	idValue byte = 0x50
)

// Datasheet section 4.3 linearization curve, applied as
// rh - (a·rh² + b·rh + c).
const (
	linearA = -0.00393
	linearB = 0.4008
	linearC = -4.7844
)

// Datasheet section 4.4 temperature compensation,
// rh + (t - compRefTemp)·(compQ1·rh + compQ0).
const (
	compRefTemp = 30.0
	compQ0      = 0.1973
	compQ1      = 0.00237
)

// countToTemperature decodes the DATA register after a temperature
// conversion, in °C. The 14 bit result is left aligned.
func countToTemperature(count uint16) float64 {
	return float64(count>>2)/32.0 - 50
}

// countToHumidity decodes the DATA register after a humidity conversion, in
// %RH, linearized but not temperature compensated. The 12 bit result is left
// aligned.
func countToHumidity(count uint16) float64 {
	rh := float64(count>>4)/16.0 - 24
	return rh - (linearA*rh*rh + linearB*rh + linearC)
}

// RHTempCompensate corrects a linearized humidity reading for the
// temperature at which it was taken. It has no effect at 30 °C.
func RHTempCompensate(rh, temp float64) float64 {
	return rh + (temp-compRefTemp)*(compQ1*rh+compQ0)
}
