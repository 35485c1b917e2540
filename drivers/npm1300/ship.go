package npm1300

// ShipHoldTime is the SHPHLD press duration needed to leave ship mode.
type ShipHoldTime uint8

const (
	ShipHold16ms ShipHoldTime = iota
	ShipHold32ms
	ShipHold64ms
	ShipHold96ms
	ShipHold304ms
	ShipHold608ms
	ShipHold1008ms
	ShipHold3008ms
)

var shipHoldMs = [...]uint16{16, 32, 64, 96, 304, 608, 1008, 3008}

// Millis returns the press duration in milliseconds.
func (t ShipHoldTime) Millis() uint16 {
	if int(t) >= len(shipHoldMs) {
		return 0
	}
	return shipHoldMs[t]
}

// LPRESETCONFIG bits.
const (
	lpResetDisableBit   = 0
	lpResetTwoButtonBit = 1
)

// EnterHibernate powers down everything except the hibernate timer.
func (d *Device) EnterHibernate() error { return d.trigger(RegTaskEnterHibernate) }

// EnterShipMode powers down until SHPHLD is pressed or VBUS appears.
func (d *Device) EnterShipMode() error { return d.trigger(RegTaskEnterShipMode) }

// ResetShipHoldConfig restores ship/hold settings to their defaults.
func (d *Device) ResetShipHoldConfig() error { return d.trigger(RegTaskResetCfg) }

// SetShipHoldTime programs the exit press duration and latches it.
func (d *Device) SetShipHoldTime(t ShipHoldTime) error {
	if t > ShipHold3008ms {
		return ErrOutOfRange
	}
	if err := d.write(RegShipHoldConfig, uint8(t)); err != nil {
		return err
	}
	return d.trigger(RegTaskShipHoldCfgStrobe)
}

// ShipHoldPressed reports the debounced SHPHLD button state.
func (d *Device) ShipHoldPressed() (bool, error) {
	v, err := d.read(RegShipHoldStatus)
	return v&1 != 0, err
}

// EnableLongPressReset enables or disables reset on a long SHPHLD press.
func (d *Device) EnableLongPressReset(enable bool) error {
	if err := d.setBit(RegLPResetConfig, lpResetDisableBit, !enable); err != nil {
		return err
	}
	return d.trigger(RegTaskShipHoldCfgStrobe)
}

// UseTwoButtonReset requires SHPHLD and GPIO0 together for long-press reset
// when true, SHPHLD alone when false.
func (d *Device) UseTwoButtonReset(twoButton bool) error {
	if err := d.setBit(RegLPResetConfig, lpResetTwoButtonBit, twoButton); err != nil {
		return err
	}
	return d.trigger(RegTaskShipHoldCfgStrobe)
}
