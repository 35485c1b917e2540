// Package npm1300 drives the Nordic nPM1300 PMIC over I²C.
//
// The chip exposes a 16-bit register address space split into peripherals
// (SYSREG, BCHARGER, BUCK, ADC, GPIOS, POF, LEDDRV, SHIP). Measurements are
// task-triggered: the driver writes the task register, waits a fixed settle
// time, then assembles the 10-bit result from an MSB register and a shared
// LSB register.
//
// A Device is not safe for concurrent use; callers serialise access.
package npm1300

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// SettleMicros is the fixed ADC conversion wait after a task trigger.
const SettleMicros = 250

// Delayer suspends the caller for at least us microseconds.
type Delayer interface {
	DelayMicroseconds(us uint32)
}

// SleepDelay implements Delayer with time.Sleep.
type SleepDelay struct{}

func (SleepDelay) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// Config holds construction parameters.
type Config struct {
	Address uint16
	Delay   Delayer // defaults to SleepDelay
}

// DefaultConfig returns the strapped address and a sleeping delayer.
func DefaultConfig() Config {
	return Config{Address: AddressDefault, Delay: SleepDelay{}}
}

// Validate checks the fields New relies on.
func (c Config) Validate() error {
	if c.Address == 0 || c.Address > 0x7F {
		return errors.New("Address must be a 7-bit I2C address (use AddressDefault)")
	}
	return nil
}

// Device represents an nPM1300 instance on an I²C bus.
type Device struct {
	i2c   drivers.I2C
	addr  uint16
	delay Delayer

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [1]byte
}

// New constructs a Device. Zero fields in cfg take their defaults.
func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	dl := cfg.Delay
	if dl == nil {
		dl = SleepDelay{}
	}
	return &Device{i2c: i2c, addr: addr, delay: dl}
}

// Address returns the 7-bit bus address in use.
func (d *Device) Address() uint16 { return d.addr }
