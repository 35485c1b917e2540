package npm1300

// POFCONFIG layout.
const (
	pofEnaBit      = 0
	pofPolarityBit = 1
	pofThreshMask  = 0b0011_1100
	pofThreshShift = 2
)

// POFThreshold selects the VSYS power-fail comparator level, 2.6 V + 0.1 V
// per step.
type POFThreshold uint8

const (
	POF2V6 POFThreshold = iota
	POF2V7
	POF2V8
	POF2V9
	POF3V0
	POF3V1
	POF3V2
	POF3V3
	POF3V4
	POF3V5
)

// Volts returns the comparator level.
func (t POFThreshold) Volts() float32 { return 2.6 + 0.1*float32(t) }

// POFPolarity selects the level of the POF warning output.
type POFPolarity uint8

const (
	POFActiveLow POFPolarity = iota
	POFActiveHigh
)

// EnablePOF turns the power-fail comparator on or off.
func (d *Device) EnablePOF(enable bool) error {
	return d.setBit(RegPOFConfig, pofEnaBit, enable)
}

// POFEnabled reports whether the comparator is on.
func (d *Device) POFEnabled() (bool, error) {
	v, err := d.read(RegPOFConfig)
	return v&(1<<pofEnaBit) != 0, err
}

// SetPOFPolarity sets the warning output polarity.
func (d *Device) SetPOFPolarity(p POFPolarity) error {
	return d.setBit(RegPOFConfig, pofPolarityBit, p == POFActiveHigh)
}

// POFPolarity returns the warning output polarity.
func (d *Device) POFPolarity() (POFPolarity, error) {
	v, err := d.read(RegPOFConfig)
	return POFPolarity((v >> pofPolarityBit) & 1), err
}

// SetVSYSThreshold programs the comparator level. VSYS is measured first;
// a threshold above the present VSYS would assert power-fail immediately, so
// it is refused with ErrInvalidPofVSYSThreshold and nothing is written.
func (d *Device) SetVSYSThreshold(t POFThreshold) error {
	if t > POF3V5 {
		return ErrOutOfRange
	}
	vsys, err := d.MeasureVSYS()
	if err != nil {
		return err
	}
	if vsys < t.Volts() {
		return ErrInvalidPofVSYSThreshold
	}
	return d.modifyField(RegPOFConfig, pofThreshMask, pofThreshShift, uint8(t))
}

// VSYSThreshold returns the programmed comparator level.
func (d *Device) VSYSThreshold() (POFThreshold, error) {
	v, err := d.read(RegPOFConfig)
	if err != nil {
		return 0, err
	}
	t := POFThreshold((v & pofThreshMask) >> pofThreshShift)
	if t > POF3V5 {
		return 0, &UnexpectedStateError{Addr: RegPOFConfig.Addr(), Value: v}
	}
	return t, nil
}
