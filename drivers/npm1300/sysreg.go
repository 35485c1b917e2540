package npm1300

// VBUSCurrentLimit selects the VBUS input current limit.
type VBUSCurrentLimit uint8

const (
	VBUSLimit500mA VBUSCurrentLimit = iota
	VBUSLimit100mA
	VBUSLimit200mA
	VBUSLimit300mA
	VBUSLimit400mA
	VBUSLimit500mAAlt
	VBUSLimit600mA
	VBUSLimit700mA
	VBUSLimit800mA
	VBUSLimit900mA
	VBUSLimit1000mA
	VBUSLimit1100mA
	VBUSLimit1200mA
	VBUSLimit1300mA
	VBUSLimit1400mA
	VBUSLimit1500mA
)

// Milliamps returns the limit in mA.
func (l VBUSCurrentLimit) Milliamps() uint16 {
	switch l {
	case VBUSLimit500mA:
		return 500
	case VBUSLimit100mA:
		return 100
	default:
		return uint16(l) * 100
	}
}

// VBUSLimitFromMilliamps picks the code for an exact limit in mA.
func VBUSLimitFromMilliamps(mA uint16) (VBUSCurrentLimit, error) {
	switch {
	case mA == 100:
		return VBUSLimit100mA, nil
	case mA == 500:
		return VBUSLimit500mA, nil
	case mA >= 200 && mA <= 1500 && mA%100 == 0:
		return VBUSCurrentLimit(mA / 100), nil
	default:
		return 0, ErrOutOfRange
	}
}

// SetVBUSCurrentLimit writes the limit and applies it immediately.
func (d *Device) SetVBUSCurrentLimit(l VBUSCurrentLimit) error {
	if l > VBUSLimit1500mA {
		return ErrOutOfRange
	}
	if err := d.write(RegVBUSInILim0, uint8(l)); err != nil {
		return err
	}
	return d.trigger(RegTaskUpdateILimSW)
}

// VBUSCurrentLimit returns the programmed limit.
func (d *Device) VBUSCurrentLimit() (VBUSCurrentLimit, error) {
	v, err := d.read(RegVBUSInILim0)
	return VBUSCurrentLimit(v & 0x0F), err
}

// SuspendVBUS disconnects (true) or reconnects the VBUS input.
func (d *Device) SuspendVBUS(suspend bool) error {
	return d.writeBool(RegVBUSSuspend, suspend)
}

// VBUSStatus is the VBUSINSTATUS bitmask.
type VBUSStatus uint8

const (
	VBUSPresent VBUSStatus = 1 << iota
	VBUSCurrentLimited
	VBUSOverVoltage
	VBUSUnderVoltage
	VBUSSuspended
	VBUSOutActive
)

func (s VBUSStatus) Has(f VBUSStatus) bool { return s&f != 0 }

// ReadVBUSStatus returns the VBUS input status.
func (d *Device) ReadVBUSStatus() (VBUSStatus, error) {
	v, err := d.read(RegVBUSInStatus)
	return VBUSStatus(v), err
}

// USBCCurrent is the USB-C source capability seen on a CC line.
type USBCCurrent uint8

const (
	USBCNoConnection USBCCurrent = iota
	USBCDefault
	USBC1A5
	USBC3A0
)

// ReadUSBCDetect returns the comparator result for CC1 and CC2.
func (d *Device) ReadUSBCDetect() (cc1, cc2 USBCCurrent, err error) {
	v, err := d.read(RegUSBCDetectStatus)
	if err != nil {
		return 0, 0, err
	}
	return USBCCurrent(v & 0b11), USBCCurrent((v >> 2) & 0b11), nil
}
