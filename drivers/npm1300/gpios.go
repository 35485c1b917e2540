package npm1300

// NumGPIOs is the number of general purpose pins.
const NumGPIOs = 5

// GPIOMode selects a pin's input or output function.
type GPIOMode uint8

const (
	GPIInput GPIOMode = iota
	GPILogic1
	GPILogic0
	GPIEventRise
	GPIEventFall
	GPOIrq
	GPOReset
	GPOPowerLossWarning
	GPOLogic1
	GPOLogic0
)

// GPIODrive is the output drive strength.
type GPIODrive uint8

const (
	GPIODrive1mA GPIODrive = iota
	GPIODrive6mA
)

// GPIOConfig is the full configuration of one pin.
type GPIOConfig struct {
	Mode      GPIOMode
	Drive     GPIODrive
	PullUp    bool
	PullDown  bool
	OpenDrain bool
	Debounce  bool
}

// GPIOOption adjusts a GPIOConfig.
type GPIOOption func(*GPIOConfig)

func WithGPIOMode(m GPIOMode) GPIOOption   { return func(c *GPIOConfig) { c.Mode = m } }
func WithGPIODrive(s GPIODrive) GPIOOption { return func(c *GPIOConfig) { c.Drive = s } }
func WithPullUp(on bool) GPIOOption        { return func(c *GPIOConfig) { c.PullUp = on } }
func WithPullDown(on bool) GPIOOption      { return func(c *GPIOConfig) { c.PullDown = on } }
func WithOpenDrain(on bool) GPIOOption     { return func(c *GPIOConfig) { c.OpenDrain = on } }
func WithDebounce(on bool) GPIOOption      { return func(c *GPIOConfig) { c.Debounce = on } }

// NewGPIOConfig starts from the reset state (input, 1 mA, pull-down) and
// applies opts in order.
func NewGPIOConfig(opts ...GPIOOption) GPIOConfig {
	c := GPIOConfig{Mode: GPIInput, Drive: GPIODrive1mA, PullDown: true}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// ConfigureGPIO writes every register of pin in mode, drive, pull-up,
// pull-down, open-drain, debounce order. A failure stops the sequence.
func (d *Device) ConfigureGPIO(pin uint8, cfg GPIOConfig) error {
	if pin >= NumGPIOs {
		return ErrInvalidGPIO
	}
	if cfg.Mode > GPOLogic0 || cfg.Drive > GPIODrive6mA {
		return ErrOutOfRange
	}
	p := Reg(pin)
	steps := [...]struct {
		r Reg
		v uint8
	}{
		{RegGPIOMode0 + p, uint8(cfg.Mode)},
		{RegGPIODrive0 + p, uint8(cfg.Drive)},
		{RegGPIOPUEn0 + p, b2u(cfg.PullUp)},
		{RegGPIOPDEn0 + p, b2u(cfg.PullDown)},
		{RegGPIOOpenDrain0 + p, b2u(cfg.OpenDrain)},
		{RegGPIODebounce0 + p, b2u(cfg.Debounce)},
	}
	for _, s := range steps {
		if err := d.write(s.r, s.v); err != nil {
			return err
		}
	}
	return nil
}

// GPIOStatus returns the input level of pin.
func (d *Device) GPIOStatus(pin uint8) (bool, error) {
	if pin >= NumGPIOs {
		return false, ErrInvalidGPIO
	}
	v, err := d.read(RegGPIOStatus)
	return v&(1<<pin) != 0, err
}

// GPIO selects a pin as a control source for another block. GPIONone
// disconnects the control.
type GPIO uint8

const (
	GPIONone GPIO = iota
	GPIO0
	GPIO1
	GPIO2
	GPIO3
	GPIO4
)
