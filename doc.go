// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package envsensors is a container for environmental sensor drivers built
// on periph.io.
//
// si7005 drives the Silicon Labs Si7005 humidity/temperature sensor.
// i2cdefault holds the process wide default I²C bus used by the bus-less
// convenience functions of the drivers.
package envsensors
