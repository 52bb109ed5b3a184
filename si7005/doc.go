// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package si7005 controls a Silicon Labs Si7005 relative humidity and
// temperature sensor over I²C.
//
// The chip has a single conversion pipeline. A conversion is started by
// writing the CONFIG register, completion is signalled by the STATUS
// register and the result is read from the DATA register. The humidity
// output is linearized by this package but the chip does not temperature
// compensate it, so every humidity reading is preceded by a temperature
// conversion.
//
// Two APIs are provided:
//
// Dev implements physic.SenseEnv and returns Go errors. Waiting for a
// conversion is bounded by Opts.ConversionTimeout and can be cancelled
// through a context.
//
// The package level functions (Probe, ReadTemperature, ReadHumidity,
// SetHeater and their *Bus variants, plus StartConversion, IsDataReady,
// ReadData and RHTempCompensate) report failures in-band: false or
// InvalidValue. Their blocking reads poll the chip without a timeout, so a
// chip that never reports ready blocks the caller forever. Callers that need
// control over the wait use StartConversion, IsDataReady and ReadData
// directly.
//
// # Datasheet
//
// https://www.silabs.com/documents/public/data-sheets/Si7005.pdf
//
// # Accuracy
//
//	Temperature: ±0.5 °C typical, 14 bit (1/32 °C) resolution.
//	Humidity: ±4.5 %RH typical, 12 bit (1/16 %RH) resolution.
//	Conversion time: 35 ms normal, 18 ms fast mode.
package si7005
