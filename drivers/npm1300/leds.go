package npm1300

// NumLEDs is the number of LED driver outputs.
const NumLEDs = 3

// LEDMode selects what drives an LED output.
type LEDMode uint8

const (
	LEDChargingError LEDMode = iota
	LEDCharging
	LEDHost
	LEDNotUsed
)

// ConfigureLEDMode sets the source for LED output led (0..2).
func (d *Device) ConfigureLEDMode(led uint8, mode LEDMode) error {
	if led >= NumLEDs {
		return ErrInvalidLED
	}
	if mode > LEDNotUsed {
		return ErrOutOfRange
	}
	return d.write(RegLEDDrv0ModeSel+Reg(led), uint8(mode))
}

// LEDMode returns the configured source for LED output led.
func (d *Device) LEDMode(led uint8) (LEDMode, error) {
	if led >= NumLEDs {
		return 0, ErrInvalidLED
	}
	v, err := d.read(RegLEDDrv0ModeSel + Reg(led))
	return LEDMode(v & 0b11), err
}

// SetLED switches a host-driven LED on or off.
func (d *Device) SetLED(led uint8, on bool) error {
	if led >= NumLEDs {
		return ErrInvalidLED
	}
	// Set/clear pairs are interleaved per LED.
	r := RegLEDDrv0Set + Reg(2*led)
	if !on {
		r++
	}
	return d.trigger(r)
}
