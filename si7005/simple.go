// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7005

import (
	"context"

	"periph.io/x/conn/v3/i2c"

	"github.com/GermanBionicSystems/envsensors/i2cdefault"
)

// InvalidValue is returned by the float functions of this file when no
// measurement could be taken. No decodable reading equals InvalidValue.
const InvalidValue = -1000.0

// blockingOpts waits without bound and without sleeping between polls.
var blockingOpts = Opts{}

// Probe reports whether an Si7005 is present on the default bus.
func Probe() bool {
	return ProbeBus(defaultBus())
}

// ReadTemperature performs a conversion on the default bus and returns the
// temperature in °C, or InvalidValue.
func ReadTemperature() float64 {
	return ReadTemperatureBus(defaultBus())
}

// ReadHumidity performs a temperature then a humidity conversion on the
// default bus and returns the compensated relative humidity in %, or
// InvalidValue.
func ReadHumidity() float64 {
	return ReadHumidityBus(defaultBus())
}

// SetHeater turns the heater of the Si7005 on the default bus on or off.
func SetHeater(on bool) bool {
	return SetHeaterBus(defaultBus(), on)
}

// defaultBus resolves the process wide bus. Failing to open it is reported
// the same way as a missing bus.
func defaultBus() i2c.Bus {
	b, err := i2cdefault.Default.Bus()
	if err != nil {
		return nil
	}
	return b
}

// ProbeBus reports whether an Si7005 is present on b.
func ProbeBus(b i2c.Bus) bool {
	if b == nil {
		return false
	}
	return newDev(b, blockingOpts).probe() == nil
}

// ReadTemperatureBus is ReadTemperature on b. It blocks until the chip
// reports the conversion done.
func ReadTemperatureBus(b i2c.Bus) float64 {
	if b == nil {
		return InvalidValue
	}
	d := newDev(b, blockingOpts)
	t, err := d.temperature(context.Background(), d.isDataReady)
	if err != nil {
		return InvalidValue
	}
	return t
}

// ReadHumidityBus is ReadHumidity on b. It blocks until the chip reports
// both conversions done.
func ReadHumidityBus(b i2c.Bus) float64 {
	if b == nil {
		return InvalidValue
	}
	d := newDev(b, blockingOpts)
	rh, _, err := d.humidity(context.Background(), d.isDataReady)
	if err != nil {
		return InvalidValue
	}
	return rh
}

// SetHeaterBus is SetHeater on b.
func SetHeaterBus(b i2c.Bus, on bool) bool {
	if b == nil {
		return false
	}
	return newDev(b, blockingOpts).setHeater(on) == nil
}

// StartConversion starts a temperature or humidity conversion on b and
// returns immediately. The other CONFIG bits are preserved.
func StartConversion(b i2c.Bus, temperature, fast bool) bool {
	if b == nil {
		return false
	}
	m := MeasureHumidity
	if temperature {
		m = MeasureTemperature
	}
	return newDev(b, blockingOpts).startConversion(m, fast) == nil
}

// IsDataReady reports whether the conversion started on b is done. A bus
// error is indistinguishable from a conversion in progress.
func IsDataReady(b i2c.Bus) bool {
	if b == nil {
		return false
	}
	ok, _ := newDev(b, blockingOpts).isDataReady()
	return ok
}

// ReadData reads out the conversion result from b, in °C or %RH, or
// InvalidValue. The humidity is linearized but not temperature compensated.
func ReadData(b i2c.Bus, temperature bool) float64 {
	if b == nil {
		return InvalidValue
	}
	m := MeasureHumidity
	if temperature {
		m = MeasureTemperature
	}
	v, err := newDev(b, blockingOpts).readData(m)
	if err != nil {
		return InvalidValue
	}
	return v
}

// isDataReady reads a failed STATUS read as not ready, so a waiting caller
// keeps polling.
func (d *Dev) isDataReady() (bool, error) {
	ok, err := d.dataReady()
	return ok && err == nil, nil
}
