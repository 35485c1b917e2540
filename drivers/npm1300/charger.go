package npm1300

// Charge current range, programmed in 2 mA steps.
const (
	ChargeCurrentMin = 32
	ChargeCurrentMax = 800
)

// BCHGENABLE and BCHGDISABLE bit positions (shared by the set/clr pair).
const (
	chgEnableBit       = 0
	chgFullCoolBit     = 1
	chgNoRechargeBit   = 0
	chgIgnoreNTCBit    = 1
	chgDisableWarmBit  = 0
	thresholdLSBWidth  = 2
	thresholdLSBMask   = 0b11
	chargeCodeLSBWidth = 1
)

// EnableCharger starts or stops battery charging.
func (d *Device) EnableCharger(on bool) error {
	return d.setClr(RegBChgEnableSet, RegBChgEnableClr, chgEnableBit, on)
}

// EnableFullCurrentInCool allows 100% charge current in the cool region
// instead of 50%.
func (d *Device) EnableFullCurrentInCool(on bool) error {
	return d.setClr(RegBChgEnableSet, RegBChgEnableClr, chgFullCoolBit, on)
}

// EnableRecharge re-enables charging once VBAT drops below the recharge
// threshold after completion.
func (d *Device) EnableRecharge(on bool) error {
	// The DISABLE register holds the inverse.
	return d.setClr(RegBChgDisableSet, RegBChgDisableClr, chgNoRechargeBit, !on)
}

// UseNTC makes charging respect (true) or ignore the battery thermistor.
func (d *Device) UseNTC(on bool) error {
	return d.setClr(RegBChgDisableSet, RegBChgDisableClr, chgIgnoreNTCBit, !on)
}

// setClr writes a single bit into a write-1-to-set or write-1-to-clear
// register pair.
func (d *Device) setClr(set, clr Reg, bit uint8, on bool) error {
	r := clr
	if on {
		r = set
	}
	return d.write(r, 1<<bit)
}

// SetChargeCurrent programs the charge current limit in mA (32..800, even).
func (d *Device) SetChargeCurrent(mA uint16) error {
	if mA < ChargeCurrentMin || mA > ChargeCurrentMax || mA%2 != 0 {
		return ErrOutOfRange
	}
	code := mA / 2
	if err := d.write(RegBChgISetMSB, uint8(code>>chargeCodeLSBWidth)); err != nil {
		return err
	}
	return d.write(RegBChgISetLSB, uint8(code&1))
}

// DischargeLimit selects the battery discharge current limit.
type DischargeLimit uint8

const (
	DischargeLow  DischargeLimit = iota // 200 mA
	DischargeHigh                       // 1000 mA
)

// SetDischargeLimit programs the discharge current limit.
func (d *Device) SetDischargeLimit(l DischargeLimit) error {
	var msb, lsb uint8
	switch l {
	case DischargeLow:
		msb, lsb = 42, 0
	case DischargeHigh:
		msb, lsb = 207, 1
	default:
		return ErrOutOfRange
	}
	if err := d.write(RegBChgISetDischargeMSB, msb); err != nil {
		return err
	}
	return d.write(RegBChgISetDischargeLSB, lsb)
}

// TerminationVoltage is the charge termination voltage code.
type TerminationVoltage uint8

const (
	VTerm3V50 TerminationVoltage = iota
	VTerm3V55
	VTerm3V60
	VTerm3V65
	VTerm4V00
	VTerm4V05
	VTerm4V10
	VTerm4V15
	VTerm4V20
	VTerm4V25
	VTerm4V30
	VTerm4V35
	VTerm4V40
	VTerm4V45
)

// Volts returns the termination voltage.
func (v TerminationVoltage) Volts() float32 {
	if v <= VTerm3V65 {
		return 3.50 + 0.05*float32(v)
	}
	return 4.00 + 0.05*float32(v-VTerm4V00)
}

// SetTerminationVoltage programs the normal-region termination voltage.
func (d *Device) SetTerminationVoltage(v TerminationVoltage) error {
	if v > VTerm4V45 {
		return ErrOutOfRange
	}
	return d.write(RegBChgVTerm, uint8(v))
}

// SetWarmTerminationVoltage programs the warm-region termination voltage.
func (d *Device) SetWarmTerminationVoltage(v TerminationVoltage) error {
	if v > VTerm4V45 {
		return ErrOutOfRange
	}
	return d.write(RegBChgVTermR, uint8(v))
}

// TrickleLevel selects the trickle-to-CC transition voltage.
type TrickleLevel uint8

const (
	Trickle2V9 TrickleLevel = iota
	Trickle2V5
)

func (d *Device) SetTrickleLevel(l TrickleLevel) error {
	if l > Trickle2V5 {
		return ErrOutOfRange
	}
	return d.write(RegBChgVTrickleSel, uint8(l))
}

// TerminationCurrent selects end-of-charge current as a share of the
// charge current.
type TerminationCurrent uint8

const (
	ITerm10 TerminationCurrent = iota
	ITerm20
)

func (d *Device) SetTerminationCurrent(t TerminationCurrent) error {
	if t > ITerm20 {
		return ErrOutOfRange
	}
	return d.write(RegBChgITermSel, uint8(t))
}

// DisableChargeInWarm stops charging (true) in the warm NTC region instead
// of charging at the reduced termination voltage.
func (d *Device) DisableChargeInWarm(disable bool) error {
	return d.setBit(RegBChgConfig, chgDisableWarmBit, disable)
}

// ChargerStatus is the BCHGCHARGESTATUS bitmask.
type ChargerStatus uint8

const (
	ChgBatteryDetected ChargerStatus = 1 << iota
	ChgCompleted
	ChgTrickle
	ChgConstantCurrent
	ChgConstantVoltage
	ChgRechargeNeeded
	ChgDieTempHigh
	ChgSupplementActive
)

func (s ChargerStatus) Has(f ChargerStatus) bool { return s&f != 0 }

// Charging reports whether any charge phase is active.
func (s ChargerStatus) Charging() bool {
	return s&(ChgTrickle|ChgConstantCurrent|ChgConstantVoltage) != 0
}

func (d *Device) ReadChargerStatus() (ChargerStatus, error) {
	v, err := d.read(RegBChgChargeStatus)
	return ChargerStatus(v), err
}

// ChargerError is the latched BCHGERRREASON bitmask.
type ChargerError uint8

const (
	ChgErrNTCSensor ChargerError = 1 << iota
	ChgErrVBATSensor
	ChgErrVBATLow
	ChgErrVTrickle
	ChgErrMeasTimeout
	ChgErrChargeTimeout
	ChgErrTrickleTimeout
)

func (e ChargerError) Has(f ChargerError) bool { return e&f != 0 }

func (d *Device) ReadChargerError() (ChargerError, error) {
	v, err := d.read(RegBChgErrReason)
	return ChargerError(v), err
}

// ChargerSensor is the BCHGERRSENSOR bitmask latched when an error occurred.
type ChargerSensor uint8

const (
	SensorNTCCold ChargerSensor = 1 << iota
	SensorNTCCool
	SensorNTCWarm
	SensorNTCHot
	SensorVTerm
	SensorRecharge
	SensorVTrickle
	SensorVBATLow
)

func (s ChargerSensor) Has(f ChargerSensor) bool { return s&f != 0 }

func (d *Device) ReadChargerSensor() (ChargerSensor, error) {
	v, err := d.read(RegBChgErrSensor)
	return ChargerSensor(v), err
}

// ReleaseChargerError releases the charger from the error state.
func (d *Device) ReleaseChargerError() error { return d.trigger(RegTaskReleaseErr) }

// ClearChargerError clears the latched error reason and sensor registers.
func (d *Device) ClearChargerError() error { return d.trigger(RegTaskClearChgErr) }

// ClearSafetyTimer restarts the charge safety timer.
func (d *Device) ClearSafetyTimer() error { return d.trigger(RegTaskClearSafetyTimer) }

// NTCRegion names one of the four NTC temperature thresholds.
type NTCRegion uint8

const (
	NTCCold NTCRegion = iota
	NTCCool
	NTCWarm
	NTCHot
)

// SetNTCThreshold programs a thermistor threshold in °C for a thermistor
// with the given beta.
func (d *Device) SetNTCThreshold(region NTCRegion, celsius, beta float32) error {
	if region > NTCHot {
		return ErrOutOfRange
	}
	r := RegNTCCold + Reg(2*region)
	return d.writeThreshold(r, r+1, NTCCode(celsius, beta))
}

// DieTempThreshold selects the die temperature stop or resume level.
type DieTempThreshold uint8

const (
	DieTempStop DieTempThreshold = iota
	DieTempResume
)

// SetDieTempThreshold programs the die temperature at which charging stops
// or resumes.
func (d *Device) SetDieTempThreshold(t DieTempThreshold, celsius float32) error {
	if t > DieTempResume {
		return ErrOutOfRange
	}
	r := RegDieTempStop + Reg(2*t)
	return d.writeThreshold(r, r+1, DieTempCode(celsius))
}

// writeThreshold splits a 10-bit code into an 8-bit MSB and 2-bit LSB.
func (d *Device) writeThreshold(msb, lsb Reg, code uint16) error {
	if err := d.write(msb, uint8(code>>thresholdLSBWidth)); err != nil {
		return err
	}
	return d.write(lsb, uint8(code&thresholdLSBMask))
}

// ReadNTCRegion returns the NTCSTATUS bits (cold, cool, warm, hot).
func (d *Device) ReadNTCRegion() (uint8, error) {
	v, err := d.read(RegNTCStatus)
	return v & 0x0F, err
}

// DieTempHigh reports whether the die is above the stop threshold.
func (d *Device) DieTempHigh() (bool, error) {
	v, err := d.read(RegDieTempStatus)
	return v&1 != 0, err
}
