package npm1300

// Buck identifies one of the two step-down regulators.
type Buck uint8

const (
	Buck1 Buck = iota
	Buck2
)

const numBucks = 2

// BuckVoltage is the output voltage code, 1.0 V + 0.1 V per step. Codes 23
// and 24 both select 3.3 V.
type BuckVoltage uint8

const (
	BuckMinVoltage BuckVoltage = 0
	BuckMaxVoltage BuckVoltage = 24
)

// Volts returns the output voltage for the code.
func (v BuckVoltage) Volts() float32 {
	if v >= 23 {
		return 3.3
	}
	return 1.0 + 0.1*float32(v)
}

// BuckVoltageFromMillivolts picks the code for an exact 100 mV step in
// 1000..3300 mV.
func BuckVoltageFromMillivolts(mV uint16) (BuckVoltage, error) {
	if mV < 1000 || mV > 3300 || mV%100 != 0 {
		return 0, ErrOutOfRange
	}
	return BuckVoltage((mV - 1000) / 100), nil
}

// GPIOPolarity selects whether a control pin is active high or inverted.
type GPIOPolarity uint8

const (
	GPIONotInverted GPIOPolarity = iota
	GPIOInverted
)

// BuckStatus is the BUCKSTATUS bitmask.
type BuckStatus uint8

const (
	Buck1ModeActive BuckStatus = 1 << iota
	_
	Buck1PWMActive
	_
	Buck2ModeActive
	_
	Buck2PWMActive
)

func (s BuckStatus) Has(f BuckStatus) bool { return s&f != 0 }

func (b Buck) valid() bool { return b < numBucks }

// EnableBuck switches regulator b on or off.
func (d *Device) EnableBuck(b Buck, on bool) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	r := RegBuck1EnaSet + Reg(2*b)
	if !on {
		r++
	}
	return d.trigger(r)
}

// SetBuckForcedPWM forces PWM mode on (true) or returns to auto (false).
func (d *Device) SetBuckForcedPWM(b Buck, on bool) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	r := RegBuck1PWMSet + Reg(2*b)
	if !on {
		r++
	}
	return d.trigger(r)
}

// SetBuckVoltage programs the normal-mode output voltage and hands control
// of VOUT to software, overriding the VSET pin.
func (d *Device) SetBuckVoltage(b Buck, v BuckVoltage) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	if v > BuckMaxVoltage {
		return ErrOutOfRange
	}
	if err := d.write(RegBuck1NormVout+Reg(2*b), uint8(v)); err != nil {
		return err
	}
	return d.setBit(RegBuckSWCtrlSel, uint8(b), true)
}

// UseBuckVSET returns VOUT selection of b to the VSET pin.
func (d *Device) UseBuckVSET(b Buck) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	return d.setBit(RegBuckSWCtrlSel, uint8(b), false)
}

// BuckVoltage returns the voltage the regulator is presently targeting.
func (d *Device) BuckVoltage(b Buck) (BuckVoltage, error) {
	if !b.valid() {
		return 0, ErrInvalidBuck
	}
	v, err := d.read(RegBuck1VoutStatus + Reg(b))
	return BuckVoltage(v & 0x1F), err
}

// setGPIOControl routes pin g into a 4-bit control field (3-bit select plus
// invert) of r. The pin is configured as an input first.
func (d *Device) setGPIOControl(r Reg, b Buck, g GPIO, pol GPIOPolarity) error {
	if g > GPIO4 {
		return ErrInvalidGPIO
	}
	if g != GPIONone {
		if err := d.write(RegGPIOMode0+Reg(g-GPIO0), uint8(GPIInput)); err != nil {
			return err
		}
	}
	field := uint8(g) | uint8(pol&1)<<3
	return d.modifyField(r, 0x0F<<(4*b), 4*uint8(b), field)
}

// SetBuckRetention programs the retention voltage and the pin that selects
// it. GPIONone disables retention.
func (d *Device) SetBuckRetention(b Buck, v BuckVoltage, g GPIO, pol GPIOPolarity) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	if v > BuckMaxVoltage {
		return ErrOutOfRange
	}
	if err := d.setGPIOControl(RegBuckVRetCtrl, b, g, pol); err != nil {
		return err
	}
	if g == GPIONone {
		return nil
	}
	return d.write(RegBuck1RetVout+Reg(2*b), uint8(v))
}

// SetBuckGPIOEnable lets pin g enable regulator b.
func (d *Device) SetBuckGPIOEnable(b Buck, g GPIO, pol GPIOPolarity) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	return d.setGPIOControl(RegBuckEnCtrl, b, g, pol)
}

// SetBuckGPIOPWM lets pin g force PWM mode on regulator b.
func (d *Device) SetBuckGPIOPWM(b Buck, g GPIO, pol GPIOPolarity) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	return d.setGPIOControl(RegBuckPWMCtrl, b, g, pol)
}

// SetBuckAutoControl selects automatic switching between PWM and hysteretic
// mode (true) or hysteretic only (false).
func (d *Device) SetBuckAutoControl(b Buck, auto bool) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	return d.setBit(RegBuckCtrl0, uint8(b), auto)
}

// SetBuckPullDown enables the output discharge resistor when b is off.
func (d *Device) SetBuckPullDown(b Buck, on bool) error {
	if !b.valid() {
		return ErrInvalidBuck
	}
	return d.setBit(RegBuckCtrl0, 2+uint8(b), on)
}

// ReadBuckStatus returns the regulator status bits.
func (d *Device) ReadBuckStatus() (BuckStatus, error) {
	v, err := d.read(RegBuckStatus)
	return BuckStatus(v), err
}
