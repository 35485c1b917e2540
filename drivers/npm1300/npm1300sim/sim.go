// Package npm1300sim is an in-memory nPM1300 register file that implements
// drivers.I2C. ADC task writes latch the configured raw codes into the
// result registers, so the driver can run unmodified against it.
package npm1300sim

import (
	"errors"
	"sync"

	"npm1300-go/drivers/npm1300"
	"npm1300-go/x/mathx"
)

var (
	ErrAddress = errors.New("npm1300sim: no device at address")
	ErrFrame   = errors.New("npm1300sim: malformed transfer")
)

// Quantity names one ADC channel.
type Quantity uint8

const (
	VBAT Quantity = iota
	NTC
	DieTemp
	VSYS
	IBAT
	VBUS
	numQuantities
)

type adcChan struct {
	task, msb, lsb npm1300.Reg
	idx            uint8
}

var chans = [numQuantities]adcChan{
	VBAT:    {npm1300.RegTaskVBATMeasure, npm1300.RegADCVBATResultMSB, npm1300.RegADCGP0ResultLSBs, 0},
	NTC:     {npm1300.RegTaskNTCMeasure, npm1300.RegADCNTCResultMSB, npm1300.RegADCGP0ResultLSBs, 1},
	DieTemp: {npm1300.RegTaskTempMeasure, npm1300.RegADCTempResultMSB, npm1300.RegADCGP0ResultLSBs, 2},
	VSYS:    {npm1300.RegTaskVSYSMeasure, npm1300.RegADCVSYSResultMSB, npm1300.RegADCGP0ResultLSBs, 3},
	IBAT:    {npm1300.RegTaskIBATMeasure, npm1300.RegADCVBAT2ResultMSB, npm1300.RegADCGP1ResultLSBs, 2},
	VBUS:    {npm1300.RegTaskVBUS7Measure, npm1300.RegADCVBAT3ResultMSB, npm1300.RegADCGP1ResultLSBs, 3},
}

// FaultFunc is consulted before every transfer; a non-nil return fails it.
type FaultFunc func(reg uint16, write bool) error

// Bus is a simulated nPM1300. Safe for concurrent use.
type Bus struct {
	mu     sync.Mutex
	addr   uint16
	regs   map[uint16]uint8
	raw    [numQuantities]uint16
	fault  FaultFunc
	writes int
	reads  int
}

// New returns a simulator at the default address with every channel at
// code 0 and the charger discharging.
func New() *Bus {
	b := &Bus{addr: npm1300.AddressDefault, regs: make(map[uint16]uint8)}
	b.regs[npm1300.RegADCIBATMeasStatus.Addr()] = 0x04
	return b
}

// Tx implements drivers.I2C.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if addr != b.addr {
		return ErrAddress
	}
	if len(w) < 2 {
		return ErrFrame
	}
	reg := uint16(w[0])<<8 | uint16(w[1])
	write := len(r) == 0
	if b.fault != nil {
		if err := b.fault(reg, write); err != nil {
			return err
		}
	}
	if !write {
		b.reads++
		for i := range r {
			r[i] = b.regs[reg+uint16(i)]
		}
		return nil
	}
	b.writes++
	for i, v := range w[2:] {
		b.store(reg+uint16(i), v)
	}
	return nil
}

// store applies a write, completing ADC tasks immediately.
func (b *Bus) store(reg uint16, v uint8) {
	for q, c := range chans {
		if c.task.Addr() == reg {
			if v == 1 {
				b.latch(Quantity(q))
			}
			return
		}
	}
	b.regs[reg] = v
}

func (b *Bus) latch(q Quantity) {
	c := chans[q]
	code := b.raw[q]
	b.regs[c.msb.Addr()] = uint8(code >> 2)
	lsbAddr := c.lsb.Addr()
	shift := 2 * c.idx
	b.regs[lsbAddr] = b.regs[lsbAddr]&^(0b11<<shift) | uint8(code&0b11)<<shift
}

// SetRaw sets the 10-bit code the next conversion of q will produce.
// Bits above the tenth are dropped.
func (b *Bus) SetRaw(q Quantity, code uint16) {
	b.mu.Lock()
	b.raw[q] = code & 0x3FF
	b.mu.Unlock()
}

// SetVolts sets a voltage channel from a physical value.
func (b *Bus) SetVolts(q Quantity, v float32) {
	fs := npm1300.FullScaleVBAT
	switch q {
	case VSYS:
		fs = npm1300.FullScaleVSYS
	case VBUS:
		fs = npm1300.FullScaleVBUS
	}
	b.SetRaw(q, mathx.RoundCode(v/fs*1023, 1023))
}

// SetDieTemp sets the die temperature channel in °C.
func (b *Bus) SetDieTemp(c float32) { b.SetRaw(DieTemp, npm1300.DieTempCode(c)) }

// SetNTCTemp sets the thermistor channel in °C for the given beta.
func (b *Bus) SetNTCTemp(c, beta float32) { b.SetRaw(NTC, npm1300.NTCCode(c, beta)) }

// SetChargerMode writes the raw ADCIBATMEASSTATUS value.
func (b *Bus) SetChargerMode(status uint8) {
	b.Set(npm1300.RegADCIBATMeasStatus, status)
}

// Set writes a register directly, bypassing task handling.
func (b *Bus) Set(r npm1300.Reg, v uint8) {
	b.mu.Lock()
	b.regs[r.Addr()] = v
	b.mu.Unlock()
}

// Get returns the current content of a register.
func (b *Bus) Get(r npm1300.Reg) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[r.Addr()]
}

// SetFault installs (or clears, with nil) a fault hook.
func (b *Bus) SetFault(f FaultFunc) {
	b.mu.Lock()
	b.fault = f
	b.mu.Unlock()
}

// Counts returns the number of write and read transfers served.
func (b *Bus) Counts() (writes, reads int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes, b.reads
}
