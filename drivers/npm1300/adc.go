package npm1300

// channel binds one ADC quantity to its task, MSB result register and LSB
// field (shared register + 2-bit field index).
type channel struct {
	task Reg
	msb  Reg
	lsb  Reg
	idx  uint8
}

var (
	chVBAT = channel{RegTaskVBATMeasure, RegADCVBATResultMSB, RegADCGP0ResultLSBs, 0}
	chNTC  = channel{RegTaskNTCMeasure, RegADCNTCResultMSB, RegADCGP0ResultLSBs, 1}
	chTemp = channel{RegTaskTempMeasure, RegADCTempResultMSB, RegADCGP0ResultLSBs, 2}
	chVSYS = channel{RegTaskVSYSMeasure, RegADCVSYSResultMSB, RegADCGP0ResultLSBs, 3}
	chIBAT = channel{RegTaskIBATMeasure, RegADCVBAT2ResultMSB, RegADCGP1ResultLSBs, 2}
	chVBUS = channel{RegTaskVBUS7Measure, RegADCVBAT3ResultMSB, RegADCGP1ResultLSBs, 3}
)

// sample runs trigger, settle, MSB read, LSB read and returns the raw code.
func (d *Device) sample(ch channel) (uint16, error) {
	if err := d.trigger(ch.task); err != nil {
		return 0, err
	}
	d.delay.DelayMicroseconds(SettleMicros)
	msb, err := d.read(ch.msb)
	if err != nil {
		return 0, err
	}
	lsb, err := d.read(ch.lsb)
	if err != nil {
		return 0, err
	}
	return Assemble(msb, lsbField(lsb, ch.idx)), nil
}

func (d *Device) measure(ch channel, conv func(uint16) float32) (float32, error) {
	code, err := d.sample(ch)
	if err != nil {
		return 0, err
	}
	return conv(code), nil
}

// MeasureVBAT returns battery voltage in volts.
func (d *Device) MeasureVBAT() (float32, error) {
	return d.measure(chVBAT, func(c uint16) float32 { return VoltsFromCode(c, FullScaleVBAT) })
}

// MeasureVSYS returns system rail voltage in volts.
func (d *Device) MeasureVSYS() (float32, error) {
	return d.measure(chVSYS, func(c uint16) float32 { return VoltsFromCode(c, FullScaleVSYS) })
}

// MeasureVBUS returns USB input voltage in volts.
func (d *Device) MeasureVBUS() (float32, error) {
	return d.measure(chVBUS, func(c uint16) float32 { return VoltsFromCode(c, FullScaleVBUS) })
}

// MeasureDieTemp returns die temperature in °C.
func (d *Device) MeasureDieTemp() (float32, error) {
	return d.measure(chTemp, DieTempFromCode)
}

// MeasureNTC returns battery thermistor temperature in °C for a thermistor
// with the given beta. A zero code (shorted or absent NTC) is reported as
// ErrNoNTC rather than converted.
func (d *Device) MeasureNTC(beta float32) (float32, error) {
	code, err := d.sample(chNTC)
	if err != nil {
		return 0, err
	}
	if code == 0 {
		return 0, ErrNoNTC
	}
	return NTCTempFromCode(code, beta), nil
}

// MeasureIBAT returns battery current in mA. The full-scale current is read
// first; an unexpected charger mode aborts before the ADC is triggered.
func (d *Device) MeasureIBAT() (float32, error) {
	fs, err := d.FullScaleCurrent()
	if err != nil {
		return 0, err
	}
	return d.measure(chIBAT, func(c uint16) float32 { return CurrentFromCode(c, fs) })
}

// ChargerMode is the battery current direction reported by the ADC.
type ChargerMode uint8

const (
	ModeDischarging ChargerMode = 0b01
	ModeCharging    ChargerMode = 0b11
)

func (m ChargerMode) String() string {
	switch m {
	case ModeDischarging:
		return "discharging"
	case ModeCharging:
		return "charging"
	default:
		return "unknown"
	}
}

// ReadChargerMode decodes ADCIBATMEASSTATUS bits [3:2]. Values other than
// charging or discharging yield an *UnexpectedStateError.
func (d *Device) ReadChargerMode() (ChargerMode, error) {
	v, err := d.read(RegADCIBATMeasStatus)
	if err != nil {
		return 0, err
	}
	switch m := ChargerMode((v >> 2) & 0b11); m {
	case ModeDischarging, ModeCharging:
		return m, nil
	default:
		return 0, &UnexpectedStateError{Addr: RegADCIBATMeasStatus.Addr(), Value: v}
	}
}

// FullScaleCurrent returns the IBAT full-scale current in mA, derived from
// the discharge or charge limit depending on the present charger mode.
func (d *Device) FullScaleCurrent() (float32, error) {
	mode, err := d.ReadChargerMode()
	if err != nil {
		return 0, err
	}
	msbReg, lsbReg, scale := RegBChgISetDischargeMSB, RegBChgISetDischargeLSB, DischargeScale
	if mode == ModeCharging {
		msbReg, lsbReg, scale = RegBChgISetMSB, RegBChgISetLSB, ChargeScale
	}
	msb, err := d.read(msbReg)
	if err != nil {
		return 0, err
	}
	lsb, err := d.read(lsbReg)
	if err != nil {
		return 0, err
	}
	return float32(Assemble(msb, lsb)) * scale, nil
}

// ConfigureAutoVBAT selects hardware VBAT sampling every second (true) or
// single conversions on trigger (false).
func (d *Device) ConfigureAutoVBAT(enable bool) error {
	return d.writeBool(RegADCConfig, enable)
}

// EnableAutoIBAT makes the ADC follow every VBAT conversion with an IBAT
// conversion.
func (d *Device) EnableAutoIBAT(enable bool) error {
	return d.writeBool(RegADCIBATMeasEn, enable)
}

// AutoIBATEnabled reports the ADCIBATMEASEN setting.
func (d *Device) AutoIBATEnabled() (bool, error) {
	v, err := d.read(RegADCIBATMeasEn)
	return v&1 != 0, err
}

// NTCType selects the battery thermistor nominal resistance.
type NTCType uint8

const (
	NTCNone NTCType = iota
	NTC10k
	NTC47k
	NTC100k
)

// ConfigureNTCResistance tells the ADC which thermistor is fitted.
func (d *Device) ConfigureNTCResistance(t NTCType) error {
	if t > NTC100k {
		return ErrOutOfRange
	}
	return d.write(RegADCNTCRSel, uint8(t))
}

// ReadNTCResistance returns the configured thermistor type.
func (d *Device) ReadNTCResistance() (NTCType, error) {
	v, err := d.read(RegADCNTCRSel)
	return NTCType(v & 0b11), err
}
