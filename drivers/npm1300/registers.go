package npm1300

// 7-bit I2C address (1101_011b).
const AddressDefault = 0x6B

// Peripheral base addresses (high byte of the 16-bit register address).
const (
	baseSysreg   = 0x02
	baseBCharger = 0x03
	baseBuck     = 0x04
	baseADC      = 0x05
	baseGPIOs    = 0x06
	basePOF      = 0x09
	baseLEDDrv   = 0x0A
	baseShip     = 0x0B
)

// Access describes what a register allows.
type Access uint8

const (
	AccessR    Access = 1 << iota // readable
	AccessW                       // writable
	accessTask                    // write 1 to trigger
	AccessRW   = AccessR | AccessW
	AccessTask = AccessW | accessTask
)

func (a Access) Readable() bool { return a&AccessR != 0 }
func (a Access) Writable() bool { return a&AccessW != 0 }
func (a Access) IsTask() bool   { return a&accessTask != 0 }

// Reg is the symbolic name of one 8-bit register.
type Reg uint8

// Register is a typed descriptor of one entry in the memory map.
type Register struct {
	Name   string
	Addr   uint16
	Access Access
}

const (
	// SYSREG
	RegTaskUpdateILimSW Reg = iota
	RegVBUSInILim0
	RegVBUSSuspend
	RegUSBCDetectStatus
	RegVBUSInStatus

	// BCHARGER
	RegTaskReleaseErr
	RegTaskClearChgErr
	RegTaskClearSafetyTimer
	RegBChgEnableSet
	RegBChgEnableClr
	RegBChgDisableSet
	RegBChgDisableClr
	RegBChgISetMSB
	RegBChgISetLSB
	RegBChgISetDischargeMSB
	RegBChgISetDischargeLSB
	RegBChgVTerm
	RegBChgVTermR
	RegBChgVTrickleSel
	RegBChgITermSel
	RegNTCCold
	RegNTCColdLSB
	RegNTCCool
	RegNTCCoolLSB
	RegNTCWarm
	RegNTCWarmLSB
	RegNTCHot
	RegNTCHotLSB
	RegDieTempStop
	RegDieTempStopLSB
	RegDieTempResume
	RegDieTempResumeLSB
	RegBChgILimStatus
	RegNTCStatus
	RegDieTempStatus
	RegBChgChargeStatus
	RegBChgErrReason
	RegBChgErrSensor
	RegBChgConfig

	// BUCK
	RegBuck1EnaSet
	RegBuck1EnaClr
	RegBuck2EnaSet
	RegBuck2EnaClr
	RegBuck1PWMSet
	RegBuck1PWMClr
	RegBuck2PWMSet
	RegBuck2PWMClr
	RegBuck1NormVout
	RegBuck1RetVout
	RegBuck2NormVout
	RegBuck2RetVout
	RegBuckEnCtrl
	RegBuckVRetCtrl
	RegBuckPWMCtrl
	RegBuckSWCtrlSel
	RegBuck1VoutStatus
	RegBuck2VoutStatus
	RegBuckCtrl0
	RegBuckStatus

	// ADC
	RegTaskVBATMeasure
	RegTaskNTCMeasure
	RegTaskTempMeasure
	RegTaskVSYSMeasure
	RegTaskIBATMeasure
	RegTaskVBUS7Measure
	RegADCConfig
	RegADCNTCRSel
	RegADCIBATMeasStatus
	RegADCVBATResultMSB
	RegADCNTCResultMSB
	RegADCTempResultMSB
	RegADCVSYSResultMSB
	RegADCGP0ResultLSBs
	RegADCVBAT2ResultMSB
	RegADCVBAT3ResultMSB
	RegADCGP1ResultLSBs
	RegADCIBATMeasEn

	// GPIOS (five consecutive instances each)
	RegGPIOMode0
	_
	_
	_
	_
	RegGPIODrive0
	_
	_
	_
	_
	RegGPIOPUEn0
	_
	_
	_
	_
	RegGPIOPDEn0
	_
	_
	_
	_
	RegGPIOOpenDrain0
	_
	_
	_
	_
	RegGPIODebounce0
	_
	_
	_
	_
	RegGPIOStatus

	// POF
	RegPOFConfig

	// LEDDRV
	RegLEDDrv0ModeSel
	RegLEDDrv1ModeSel
	RegLEDDrv2ModeSel
	RegLEDDrv0Set
	RegLEDDrv0Clr
	RegLEDDrv1Set
	RegLEDDrv1Clr
	RegLEDDrv2Set
	RegLEDDrv2Clr

	// SHIP
	RegTaskEnterHibernate
	RegTaskShipHoldCfgStrobe
	RegTaskEnterShipMode
	RegTaskResetCfg
	RegShipHoldConfig
	RegShipHoldStatus
	RegLPResetConfig

	numRegs
)

type regEntry struct {
	reg    Reg
	name   string
	base   uint8
	offset uint8
	access Access
}

// regTable is the declarative memory map. GPIO instances are expanded from
// gpioGroups in init.
var regTable = []regEntry{
	{RegTaskUpdateILimSW, "SYSREG.TASKUPDATEILIMSW", baseSysreg, 0x00, AccessTask},
	{RegVBUSInILim0, "SYSREG.VBUSINILIM0", baseSysreg, 0x01, AccessRW},
	{RegVBUSSuspend, "SYSREG.VBUSSUSPEND", baseSysreg, 0x03, AccessRW},
	{RegUSBCDetectStatus, "SYSREG.USBCDETECTSTATUS", baseSysreg, 0x05, AccessR},
	{RegVBUSInStatus, "SYSREG.VBUSINSTATUS", baseSysreg, 0x07, AccessR},

	{RegTaskReleaseErr, "BCHARGER.TASKRELEASEERR", baseBCharger, 0x00, AccessTask},
	{RegTaskClearChgErr, "BCHARGER.TASKCLEARCHGERR", baseBCharger, 0x01, AccessTask},
	{RegTaskClearSafetyTimer, "BCHARGER.TASKCLEARSAFETYTIMER", baseBCharger, 0x02, AccessTask},
	{RegBChgEnableSet, "BCHARGER.BCHGENABLESET", baseBCharger, 0x04, AccessW},
	{RegBChgEnableClr, "BCHARGER.BCHGENABLECLR", baseBCharger, 0x05, AccessW},
	{RegBChgDisableSet, "BCHARGER.BCHGDISABLESET", baseBCharger, 0x06, AccessW},
	{RegBChgDisableClr, "BCHARGER.BCHGDISABLECLR", baseBCharger, 0x07, AccessW},
	{RegBChgISetMSB, "BCHARGER.BCHGISETMSB", baseBCharger, 0x08, AccessRW},
	{RegBChgISetLSB, "BCHARGER.BCHGISETLSB", baseBCharger, 0x09, AccessRW},
	{RegBChgISetDischargeMSB, "BCHARGER.BCHGISETDISCHARGEMSB", baseBCharger, 0x0A, AccessRW},
	{RegBChgISetDischargeLSB, "BCHARGER.BCHGISETDISCHARGELSB", baseBCharger, 0x0B, AccessRW},
	{RegBChgVTerm, "BCHARGER.BCHGVTERM", baseBCharger, 0x0C, AccessRW},
	{RegBChgVTermR, "BCHARGER.BCHGVTERMR", baseBCharger, 0x0D, AccessRW},
	{RegBChgVTrickleSel, "BCHARGER.BCHGVTRICKLESEL", baseBCharger, 0x0E, AccessRW},
	{RegBChgITermSel, "BCHARGER.BCHGITERMSEL", baseBCharger, 0x0F, AccessRW},
	{RegNTCCold, "BCHARGER.NTCCOLD", baseBCharger, 0x10, AccessRW},
	{RegNTCColdLSB, "BCHARGER.NTCCOLDLSB", baseBCharger, 0x11, AccessRW},
	{RegNTCCool, "BCHARGER.NTCCOOL", baseBCharger, 0x12, AccessRW},
	{RegNTCCoolLSB, "BCHARGER.NTCCOOLLSB", baseBCharger, 0x13, AccessRW},
	{RegNTCWarm, "BCHARGER.NTCWARM", baseBCharger, 0x14, AccessRW},
	{RegNTCWarmLSB, "BCHARGER.NTCWARMLSB", baseBCharger, 0x15, AccessRW},
	{RegNTCHot, "BCHARGER.NTCHOT", baseBCharger, 0x16, AccessRW},
	{RegNTCHotLSB, "BCHARGER.NTCHOTLSB", baseBCharger, 0x17, AccessRW},
	{RegDieTempStop, "BCHARGER.DIETEMPSTOP", baseBCharger, 0x18, AccessRW},
	{RegDieTempStopLSB, "BCHARGER.DIETEMPSTOPLSB", baseBCharger, 0x19, AccessRW},
	{RegDieTempResume, "BCHARGER.DIETEMPRESUME", baseBCharger, 0x1A, AccessRW},
	{RegDieTempResumeLSB, "BCHARGER.DIETEMPRESUMELSB", baseBCharger, 0x1B, AccessRW},
	{RegBChgILimStatus, "BCHARGER.BCHGILIMSTATUS", baseBCharger, 0x2D, AccessR},
	{RegNTCStatus, "BCHARGER.NTCSTATUS", baseBCharger, 0x32, AccessR},
	{RegDieTempStatus, "BCHARGER.DIETEMPSTATUS", baseBCharger, 0x33, AccessR},
	{RegBChgChargeStatus, "BCHARGER.BCHGCHARGESTATUS", baseBCharger, 0x34, AccessR},
	{RegBChgErrReason, "BCHARGER.BCHGERRREASON", baseBCharger, 0x36, AccessR},
	{RegBChgErrSensor, "BCHARGER.BCHGERRSENSOR", baseBCharger, 0x37, AccessR},
	{RegBChgConfig, "BCHARGER.BCHGCONFIG", baseBCharger, 0x3C, AccessRW},

	{RegBuck1EnaSet, "BUCK.BUCK1ENASET", baseBuck, 0x00, AccessTask},
	{RegBuck1EnaClr, "BUCK.BUCK1ENACLR", baseBuck, 0x01, AccessTask},
	{RegBuck2EnaSet, "BUCK.BUCK2ENASET", baseBuck, 0x02, AccessTask},
	{RegBuck2EnaClr, "BUCK.BUCK2ENACLR", baseBuck, 0x03, AccessTask},
	{RegBuck1PWMSet, "BUCK.BUCK1PWMSET", baseBuck, 0x04, AccessTask},
	{RegBuck1PWMClr, "BUCK.BUCK1PWMCLR", baseBuck, 0x05, AccessTask},
	{RegBuck2PWMSet, "BUCK.BUCK2PWMSET", baseBuck, 0x06, AccessTask},
	{RegBuck2PWMClr, "BUCK.BUCK2PWMCLR", baseBuck, 0x07, AccessTask},
	{RegBuck1NormVout, "BUCK.BUCK1NORMVOUT", baseBuck, 0x08, AccessRW},
	{RegBuck1RetVout, "BUCK.BUCK1RETVOUT", baseBuck, 0x09, AccessRW},
	{RegBuck2NormVout, "BUCK.BUCK2NORMVOUT", baseBuck, 0x0A, AccessRW},
	{RegBuck2RetVout, "BUCK.BUCK2RETVOUT", baseBuck, 0x0B, AccessRW},
	{RegBuckEnCtrl, "BUCK.BUCKENCTRL", baseBuck, 0x0C, AccessRW},
	{RegBuckVRetCtrl, "BUCK.BUCKVRETCTRL", baseBuck, 0x0D, AccessRW},
	{RegBuckPWMCtrl, "BUCK.BUCKPWMCTRL", baseBuck, 0x0E, AccessRW},
	{RegBuckSWCtrlSel, "BUCK.BUCKSWCTRLSEL", baseBuck, 0x0F, AccessRW},
	{RegBuck1VoutStatus, "BUCK.BUCK1VOUTSTATUS", baseBuck, 0x10, AccessR},
	{RegBuck2VoutStatus, "BUCK.BUCK2VOUTSTATUS", baseBuck, 0x11, AccessR},
	{RegBuckCtrl0, "BUCK.BUCKCTRL0", baseBuck, 0x15, AccessRW},
	{RegBuckStatus, "BUCK.BUCKSTATUS", baseBuck, 0x34, AccessR},

	{RegTaskVBATMeasure, "ADC.TASKVBATMEASURE", baseADC, 0x00, AccessTask},
	{RegTaskNTCMeasure, "ADC.TASKNTCMEASURE", baseADC, 0x01, AccessTask},
	{RegTaskTempMeasure, "ADC.TASKTEMPMEASURE", baseADC, 0x02, AccessTask},
	{RegTaskVSYSMeasure, "ADC.TASKVSYSMEASURE", baseADC, 0x03, AccessTask},
	{RegTaskIBATMeasure, "ADC.TASKIBATMEASURE", baseADC, 0x06, AccessTask},
	{RegTaskVBUS7Measure, "ADC.TASKVBUS7MEASURE", baseADC, 0x07, AccessTask},
	{RegADCConfig, "ADC.ADCCONFIG", baseADC, 0x09, AccessRW},
	{RegADCNTCRSel, "ADC.ADCNTCRSEL", baseADC, 0x0A, AccessRW},
	{RegADCIBATMeasStatus, "ADC.ADCIBATMEASSTATUS", baseADC, 0x10, AccessR},
	{RegADCVBATResultMSB, "ADC.ADCVBATRESULTMSB", baseADC, 0x11, AccessR},
	{RegADCNTCResultMSB, "ADC.ADCNTCRESULTMSB", baseADC, 0x12, AccessR},
	{RegADCTempResultMSB, "ADC.ADCTEMPRESULTMSB", baseADC, 0x13, AccessR},
	{RegADCVSYSResultMSB, "ADC.ADCVSYSRESULTMSB", baseADC, 0x14, AccessR},
	{RegADCGP0ResultLSBs, "ADC.ADCGP0RESULTLSBS", baseADC, 0x15, AccessR},
	{RegADCVBAT2ResultMSB, "ADC.ADCVBAT2RESULTMSB", baseADC, 0x18, AccessR},
	{RegADCVBAT3ResultMSB, "ADC.ADCVBAT3RESULTMSB", baseADC, 0x19, AccessR},
	{RegADCGP1ResultLSBs, "ADC.ADCGP1RESULTLSBS", baseADC, 0x1A, AccessR},
	{RegADCIBATMeasEn, "ADC.ADCIBATMEASEN", baseADC, 0x24, AccessRW},

	{RegGPIOStatus, "GPIOS.GPIOSTATUS", baseGPIOs, 0x1E, AccessR},

	{RegPOFConfig, "POF.POFCONFIG", basePOF, 0x00, AccessRW},

	{RegLEDDrv0ModeSel, "LEDDRV.LEDDRV0MODESEL", baseLEDDrv, 0x00, AccessRW},
	{RegLEDDrv1ModeSel, "LEDDRV.LEDDRV1MODESEL", baseLEDDrv, 0x01, AccessRW},
	{RegLEDDrv2ModeSel, "LEDDRV.LEDDRV2MODESEL", baseLEDDrv, 0x02, AccessRW},
	{RegLEDDrv0Set, "LEDDRV.LEDDRV0SET", baseLEDDrv, 0x03, AccessTask},
	{RegLEDDrv0Clr, "LEDDRV.LEDDRV0CLR", baseLEDDrv, 0x04, AccessTask},
	{RegLEDDrv1Set, "LEDDRV.LEDDRV1SET", baseLEDDrv, 0x05, AccessTask},
	{RegLEDDrv1Clr, "LEDDRV.LEDDRV1CLR", baseLEDDrv, 0x06, AccessTask},
	{RegLEDDrv2Set, "LEDDRV.LEDDRV2SET", baseLEDDrv, 0x07, AccessTask},
	{RegLEDDrv2Clr, "LEDDRV.LEDDRV2CLR", baseLEDDrv, 0x08, AccessTask},

	{RegTaskEnterHibernate, "SHIP.TASKENTERHIBERNATE", baseShip, 0x00, AccessTask},
	{RegTaskShipHoldCfgStrobe, "SHIP.TASKSHPHLDCFGSTROBE", baseShip, 0x01, AccessTask},
	{RegTaskEnterShipMode, "SHIP.TASKENTERSHIPMODE", baseShip, 0x02, AccessTask},
	{RegTaskResetCfg, "SHIP.TASKRESETCFG", baseShip, 0x03, AccessTask},
	{RegShipHoldConfig, "SHIP.SHPHLDCONFIG", baseShip, 0x04, AccessRW},
	{RegShipHoldStatus, "SHIP.SHPHLDSTATUS", baseShip, 0x05, AccessR},
	{RegLPResetConfig, "SHIP.LPRESETCONFIG", baseShip, 0x06, AccessRW},
}

// GPIO register groups: five instances, one per pin.
var gpioGroups = []struct {
	first  Reg
	name   string
	offset uint8
}{
	{RegGPIOMode0, "GPIOS.GPIOMODE", 0x00},
	{RegGPIODrive0, "GPIOS.GPIODRIVE", 0x05},
	{RegGPIOPUEn0, "GPIOS.GPIOPUEN", 0x0A},
	{RegGPIOPDEn0, "GPIOS.GPIOPDEN", 0x0F},
	{RegGPIOOpenDrain0, "GPIOS.GPIOOPENDRAIN", 0x14},
	{RegGPIODebounce0, "GPIOS.GPIODEBOUNCE", 0x19},
}

var (
	registers [numRegs]Register
	byName    map[string]Reg
)

func init() {
	byName = make(map[string]Reg, int(numRegs))
	add := func(r Reg, name string, base, offset uint8, acc Access) {
		registers[r] = Register{Name: name, Addr: uint16(base)<<8 | uint16(offset), Access: acc}
		byName[name] = r
	}
	for _, e := range regTable {
		add(e.reg, e.name, e.base, e.offset, e.access)
	}
	for _, g := range gpioGroups {
		for pin := 0; pin < NumGPIOs; pin++ {
			add(g.first+Reg(pin), g.name+string(rune('0'+pin)), baseGPIOs, g.offset+uint8(pin), AccessRW)
		}
	}
}

// Descriptor returns the memory-map entry for r.
func (r Reg) Descriptor() Register {
	if r >= numRegs {
		return Register{}
	}
	return registers[r]
}

func (r Reg) Addr() uint16   { return r.Descriptor().Addr }
func (r Reg) String() string { return r.Descriptor().Name }

// Lookup resolves a register by its datasheet name, e.g. "ADC.ADCCONFIG".
func Lookup(name string) (Reg, bool) {
	r, ok := byName[name]
	return r, ok
}

// Registers returns a copy of the full memory map.
func Registers() []Register {
	out := make([]Register, 0, len(byName))
	for _, d := range registers {
		if d.Name != "" {
			out = append(out, d)
		}
	}
	return out
}
