// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestFromCelsius(t *testing.T) {
	var tests = []struct {
		c      float64
		result physic.Temperature
	}{
		{c: 0, result: physic.ZeroCelsius},
		{c: 25, result: physic.ZeroCelsius + 25*physic.Kelvin},
		{c: -50, result: physic.ZeroCelsius - 50*physic.Kelvin},
		{c: 0.03125, result: physic.ZeroCelsius + 31250*physic.MicroKelvin},
	}
	for _, test := range tests {
		res := FromCelsius(test.c)
		if res != test.result {
			t.Errorf("FromCelsius(%f)!=%s received %s", test.c, test.result, res)
		}
	}
}

func TestFromPercentRH(t *testing.T) {
	var tests = []struct {
		rh     float64
		result physic.RelativeHumidity
	}{
		{rh: 0, result: 0},
		{rh: 50, result: 50 * physic.PercentRH},
		{rh: 0.0625, result: 6250 * physic.TenthMicroRH},
	}
	for _, test := range tests {
		res := FromPercentRH(test.rh)
		if res != test.result {
			t.Errorf("FromPercentRH(%f)!=%s received %s", test.rh, test.result, res)
		}
	}
}

func TestClampHumidity(t *testing.T) {
	if h := ClampHumidity(-physic.PercentRH); h != 0 {
		t.Errorf("expected 0 received %s", h)
	}
	if h := ClampHumidity(104 * physic.PercentRH); h != 100*physic.PercentRH {
		t.Errorf("expected 100%%rH received %s", h)
	}
	if h := ClampHumidity(42 * physic.PercentRH); h != 42*physic.PercentRH {
		t.Errorf("expected 42%%rH received %s", h)
	}
}
