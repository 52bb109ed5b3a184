// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package si7005

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/mmr"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/envsensors/common"
)

// Measurement selects the quantity converted by the chip.
type Measurement int

const (
	// MeasureHumidity converts relative humidity.
	MeasureHumidity Measurement = iota
	// MeasureTemperature converts temperature.
	MeasureTemperature
)

func (m Measurement) String() string {
	switch m {
	case MeasureHumidity:
		return "humidity"
	case MeasureTemperature:
		return "temperature"
	default:
		return fmt.Sprintf("Measurement(%d)", int(m))
	}
}

// MinSampleInterval is the shortest interval accepted by SenseContinuous. A
// Sense performs two conversions of up to 35ms each.
const MinSampleInterval = 100 * time.Millisecond

var (
	// ErrNilBus is returned when no bus was supplied.
	ErrNilBus = errors.New("si7005: nil bus")
	// ErrNotFound is returned when the ID register does not identify an
	// Si7005.
	ErrNotFound = errors.New("si7005: device not found")
	// ErrTimeout is returned when a conversion did not complete within
	// Opts.ConversionTimeout.
	ErrTimeout = errors.New("si7005: conversion timeout")
)

// Opts holds the configuration options for the device.
type Opts struct {
	// ConversionTimeout bounds the wait for a single conversion. 0 means wait
	// until the chip reports ready, however long that takes.
	ConversionTimeout time.Duration
	// PollInterval is the delay between STATUS reads while waiting for a
	// conversion. 0 polls back to back.
	PollInterval time.Duration
	// Fast selects the 18ms fast conversion mode, at reduced resolution.
	Fast bool
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	ConversionTimeout: 250 * time.Millisecond,
	PollInterval:      5 * time.Millisecond,
}

// Dev represents an Si7005 humidity/temperature sensor.
//
// Dev keeps no measurement state: a pending conversion lives in the chip's
// registers.
type Dev struct {
	d    *i2c.Dev
	regs mmr.Dev8
	opts Opts

	// mu serializes bus access. smu guards the SenseContinuous loop, so Halt
	// doesn't wait behind a conversion in progress. done is closed when the
	// loop owning stop has exited.
	mu   sync.Mutex
	smu  sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewI2C returns an object that communicates over I²C to an Si7005 and
// verifies the chip is present. The Opts can be nil.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if b == nil {
		return nil, ErrNilBus
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	d := newDev(b, *opts)
	if err := d.probe(); err != nil {
		return nil, err
	}
	return d, nil
}

func newDev(b i2c.Bus, opts Opts) *Dev {
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: SensorAddress}, opts: opts}
	d.regs = mmr.Dev8{Conn: d.d, Order: binary.BigEndian}
	return d
}

// Probe checks the ID register. It returns ErrNotFound if a device answered
// with an unexpected ID.
func (d *Dev) Probe() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.probe()
}

// StartConversion starts a conversion without waiting for it. Completion is
// checked with DataReady and the result fetched with ReadData.
func (d *Dev) StartConversion(m Measurement, fast bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startConversion(m, fast)
}

// DataReady reads the STATUS register once.
func (d *Dev) DataReady() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dataReady()
}

// ReadData reads and decodes the result of the last conversion, in °C or
// %RH. Humidity is linearized but not temperature compensated, see
// RHTempCompensate.
func (d *Dev) ReadData(m Measurement) (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readData(m)
}

// WaitReady polls the STATUS register until the pending conversion
// completes, ctx is done or Opts.ConversionTimeout elapses.
func (d *Dev) WaitReady(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.waitReady(ctx, d.dataReady)
}

// Temperature performs a temperature conversion.
func (d *Dev) Temperature(ctx context.Context) (physic.Temperature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.temperature(ctx, d.dataReady)
	if err != nil {
		return 0, err
	}
	return common.FromCelsius(t), nil
}

// Humidity performs a temperature conversion followed by a humidity
// conversion and returns the compensated relative humidity.
func (d *Dev) Humidity(ctx context.Context) (physic.RelativeHumidity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rh, _, err := d.humidity(ctx, d.dataReady)
	if err != nil {
		return 0, err
	}
	return common.ClampHumidity(common.FromPercentRH(rh)), nil
}

// Sense implements physic.SenseEnv. The pressure is always 0.
func (d *Dev) Sense(e *physic.Env) error {
	return d.sense(context.Background(), e)
}

func (d *Dev) sense(ctx context.Context, e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e.Pressure = 0
	rh, t, err := d.humidity(ctx, d.dataReady)
	if err != nil {
		return err
	}
	e.Temperature = common.FromCelsius(t)
	e.Humidity = common.ClampHumidity(common.FromPercentRH(rh))
	return nil
}

// SenseContinuous implements physic.SenseEnv. Readings that fail are
// skipped. Call Halt() to stop; the returned channel is closed afterwards.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < MinSampleInterval {
		return nil, fmt.Errorf("si7005: sample interval %s is below %s", interval, MinSampleInterval)
	}
	d.smu.Lock()
	defer d.smu.Unlock()
	if d.stop != nil {
		return nil, errors.New("si7005: SenseContinuous already running")
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	d.stop, d.done = stop, done
	ch := make(chan physic.Env, 16)
	go func() {
		defer close(done)
		defer close(ch)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-stop:
				cancel()
			case <-ctx.Done():
			}
		}()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var e physic.Env
				if err := d.sense(ctx, &e); err != nil {
					continue
				}
				select {
				case ch <- e:
				case <-stop:
					return
				}
			}
		}
	}()
	return ch, nil
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Kelvin / 32
	e.Humidity = physic.PercentRH / 16
	e.Pressure = 0
}

// SetHeater turns the on-chip heater on or off. Only the HEAT bit of the
// CONFIG register is modified.
func (d *Dev) SetHeater(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setHeater(on)
}

// Heater reports whether the on-chip heater is enabled.
func (d *Dev) Heater() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cfg, err := d.regs.ReadUint8(regConfig)
	if err != nil {
		return false, fmt.Errorf("si7005: reading config: %w", err)
	}
	return cfg&configHeat != 0, nil
}

// Halt stops a running SenseContinuous and waits for it to exit. It
// implements conn.Resource.
func (d *Dev) Halt() error {
	d.smu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.smu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("si7005: %s", d.d)
}

//

func (d *Dev) probe() error {
	id, err := d.regs.ReadUint8(regID)
	if err != nil {
		return fmt.Errorf("si7005: reading id: %w", err)
	}
	if id != idValue {
		return fmt.Errorf("%w: id 0x%02x", ErrNotFound, id)
	}
	return nil
}

// modifyConfig clears mask in CONFIG, then sets set. Bits outside mask are
// written back unchanged.
func (d *Dev) modifyConfig(mask, set byte) error {
	cfg, err := d.regs.ReadUint8(regConfig)
	if err != nil {
		return fmt.Errorf("si7005: reading config: %w", err)
	}
	if err := d.regs.WriteUint8(regConfig, cfg&^mask|set); err != nil {
		return fmt.Errorf("si7005: writing config: %w", err)
	}
	return nil
}

func (d *Dev) startConversion(m Measurement, fast bool) error {
	set := configStart
	if m == MeasureTemperature {
		set |= configTemp
	}
	if fast {
		set |= configFast
	}
	return d.modifyConfig(configTemp|configFast|configStart, set)
}

func (d *Dev) setHeater(on bool) error {
	if err := d.probe(); err != nil {
		return err
	}
	var set byte
	if on {
		set = configHeat
	}
	return d.modifyConfig(configHeat, set)
}

func (d *Dev) dataReady() (bool, error) {
	status, err := d.regs.ReadUint8(regStatus)
	if err != nil {
		return false, fmt.Errorf("si7005: reading status: %w", err)
	}
	return status&statusNotReady == 0, nil
}

func (d *Dev) readData(m Measurement) (float64, error) {
	count, err := d.regs.ReadUint16(regData)
	if err != nil {
		return 0, fmt.Errorf("si7005: reading %s: %w", m, err)
	}
	if m == MeasureTemperature {
		return countToTemperature(count), nil
	}
	return countToHumidity(count), nil
}

// waitReady calls ready until it reports completion or fails. There is no
// escape other than ctx and Opts.ConversionTimeout.
func (d *Dev) waitReady(ctx context.Context, ready func() (bool, error)) error {
	if d.opts.ConversionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.ConversionTimeout)
		defer cancel()
	}
	var t *time.Timer
	for {
		ok, err := ready()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if d.opts.PollInterval <= 0 {
			select {
			case <-ctx.Done():
				return waitError(ctx)
			default:
			}
			continue
		}
		if t == nil {
			t = time.NewTimer(d.opts.PollInterval)
			defer t.Stop()
		} else {
			t.Reset(d.opts.PollInterval)
		}
		select {
		case <-ctx.Done():
			return waitError(ctx)
		case <-t.C:
		}
	}
}

func waitError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("si7005: waiting for conversion: %w", ctx.Err())
}

// measure runs one complete conversion.
func (d *Dev) measure(ctx context.Context, m Measurement, ready func() (bool, error)) (float64, error) {
	if err := d.startConversion(m, d.opts.Fast); err != nil {
		return 0, err
	}
	if err := d.waitReady(ctx, ready); err != nil {
		return 0, err
	}
	return d.readData(m)
}

func (d *Dev) temperature(ctx context.Context, ready func() (bool, error)) (float64, error) {
	if err := d.probe(); err != nil {
		return 0, err
	}
	return d.measure(ctx, MeasureTemperature, ready)
}

// humidity returns the compensated humidity and the temperature used to
// compensate it. The temperature conversion completes before the humidity
// conversion is started.
func (d *Dev) humidity(ctx context.Context, ready func() (bool, error)) (rh, temp float64, err error) {
	if err = d.probe(); err != nil {
		return
	}
	if temp, err = d.temperature(ctx, ready); err != nil {
		return
	}
	if rh, err = d.measure(ctx, MeasureHumidity, ready); err != nil {
		return
	}
	rh = RHTempCompensate(rh, temp)
	return
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
