// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7005_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/envsensors/si7005"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	d, err := si7005.NewI2C(b, nil) // nil for default options or &si7005.DefaultOpts
	if err != nil {
		log.Fatalf("failed to initialize si7005: %v", err)
	}

	e := physic.Env{}
	if err := d.Sense(&e); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%8s %9s\n", e.Temperature, e.Humidity)
}

// Example_async drives the conversion steps directly, with a custom poll
// loop.
func Example_async() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	if !si7005.StartConversion(b, true, false) {
		log.Fatal("si7005: conversion didn't start")
	}
	deadline := time.Now().Add(100 * time.Millisecond)
	for !si7005.IsDataReady(b) {
		if time.Now().After(deadline) {
			log.Fatal("si7005: no data")
		}
		time.Sleep(5 * time.Millisecond)
	}
	fmt.Printf("%.2f°C\n", si7005.ReadData(b, true))

	// The same, with errors reported.
	d, err := si7005.NewI2C(b, &si7005.Opts{ConversionTimeout: 100 * time.Millisecond, PollInterval: 5 * time.Millisecond})
	if err != nil {
		log.Fatal(err)
	}
	if err := d.StartConversion(si7005.MeasureTemperature, false); err != nil {
		log.Fatal(err)
	}
	if err := d.WaitReady(context.Background()); err != nil {
		log.Fatal(err)
	}
	t, err := d.ReadData(si7005.MeasureTemperature)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.2f°C\n", t)
}

// ExampleReadHumidity uses the default bus. It blocks until the chip
// answers.
func ExampleReadHumidity() {
	if !si7005.Probe() {
		log.Fatal("si7005: not found")
	}
	rh := si7005.ReadHumidity()
	if rh == si7005.InvalidValue {
		log.Fatal("si7005: read failed")
	}
	fmt.Printf("%.1f%%rH\n", rh)
}
