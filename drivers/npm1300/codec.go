package npm1300

import (
	"math"

	"npm1300-go/x/mathx"
)

// ADC full-scale voltages (datasheet VFSVBAT, VFSVSYS, VFSVBUS). VBAT and
// VSYS coincide on this part but are distinct datasheet parameters.
const (
	FullScaleVBAT float32 = 5.0
	FullScaleVSYS float32 = 5.0
	FullScaleVBUS float32 = 7.5
)

// Battery current scale factors applied to the programmed limit code.
const (
	DischargeScale float32 = 0.836
	ChargeScale    float32 = 1.25
)

const (
	adcMax       = 1023
	dieTempOff   = 394.67
	dieTempSlope = 0.7926
	ntcT0        = 298.15 // 25 °C in kelvin
	kelvin       = 273.15
)

// Assemble joins an 8-bit MSB and a 2-bit LSB field into a 10-bit code.
func Assemble(msb, lsb uint8) uint16 {
	return uint16(msb)<<2 | uint16(lsb&0b11)
}

// lsbField extracts channel idx's 2-bit field from a shared LSB register.
func lsbField(reg, idx uint8) uint8 {
	return (reg >> (2 * idx)) & 0b11
}

// VoltsFromCode scales a 10-bit code against fullScale volts.
func VoltsFromCode(code uint16, fullScale float32) float32 {
	return float32(code) / adcMax * fullScale
}

// CurrentFromCode scales a 10-bit code against fullScale milliamps.
func CurrentFromCode(code uint16, fullScale float32) float32 {
	return float32(code) / adcMax * fullScale
}

// DieTempFromCode converts a die temperature code to °C.
func DieTempFromCode(code uint16) float32 {
	return dieTempOff - dieTempSlope*float32(code)
}

// NTCTempFromCode converts a thermistor code to °C with the beta equation.
// code must be in (0, 1024); other values yield NaN or ±Inf.
func NTCTempFromCode(code uint16, beta float32) float32 {
	ratio := 1024/float64(code) - 1
	t := 1/(1/ntcT0-math.Log(ratio)/float64(beta)) - kelvin
	return float32(t)
}

// DieTempCode is the inverse of DieTempFromCode, clamped to the ADC range.
func DieTempCode(celsius float32) uint16 {
	return mathx.RoundCode((dieTempOff-float64(celsius))/dieTempSlope, adcMax)
}

// NTCCode is the inverse of NTCTempFromCode, clamped to the ADC range.
func NTCCode(celsius, beta float32) uint16 {
	x := float64(beta) * (1/ntcT0 - 1/(float64(celsius)+kelvin))
	return mathx.RoundCode(1024/(1+math.Exp(x)), adcMax)
}
