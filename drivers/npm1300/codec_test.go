package npm1300

import (
	"math"
	"testing"
)

func TestAssemble(t *testing.T) {
	for msb := 0; msb <= 0xFF; msb++ {
		for lsb := 0; lsb <= 3; lsb++ {
			got := Assemble(uint8(msb), uint8(lsb))
			if want := uint16(msb<<2 | lsb); got != want {
				t.Fatalf("Assemble(%d,%d)=%d want %d", msb, lsb, got, want)
			}
			if got > 1023 {
				t.Fatalf("Assemble(%d,%d)=%d out of range", msb, lsb, got)
			}
		}
	}
	// Upper bits of the LSB register are ignored.
	if got := Assemble(1, 0xFE); got != 6 {
		t.Fatalf("Assemble masks LSB: got %d", got)
	}
}

func TestLSBField(t *testing.T) {
	reg := uint8(0b11_10_01_00)
	for idx := uint8(0); idx < 4; idx++ {
		if got := lsbField(reg, idx); got != idx {
			t.Fatalf("lsbField idx %d: got %d", idx, got)
		}
	}
}

func TestVoltsFromCode(t *testing.T) {
	if v := VoltsFromCode(0, FullScaleVBAT); v != 0 {
		t.Fatalf("code 0: %v", v)
	}
	if v := VoltsFromCode(1023, FullScaleVBAT); !near(v, 5.0, 1e-6) {
		t.Fatalf("code 1023: %v", v)
	}
	if v := VoltsFromCode(1023, FullScaleVBUS); !near(v, 7.5, 1e-6) {
		t.Fatalf("VBUS code 1023: %v", v)
	}
	prev := float32(-1)
	for c := uint16(0); c <= 1023; c++ {
		v := VoltsFromCode(c, FullScaleVSYS)
		if v <= prev {
			t.Fatalf("not increasing at %d", c)
		}
		prev = v
	}
}

func TestDieTempFromCode(t *testing.T) {
	if v := DieTempFromCode(0); !near(v, 394.67, 1e-4) {
		t.Fatalf("code 0: %v", v)
	}
	// 394.67 - 0.7926*500 = -1.63
	if v := DieTempFromCode(500); !near(v, -1.63, 1e-3) {
		t.Fatalf("code 500: %v", v)
	}
	prev := DieTempFromCode(0)
	for c := uint16(1); c <= 1023; c++ {
		v := DieTempFromCode(c)
		if v >= prev {
			t.Fatalf("not decreasing at %d", c)
		}
		prev = v
	}
}

func TestNTCTempFromCode(t *testing.T) {
	if v := NTCTempFromCode(512, 3380); !near(v, 25, 1e-3) {
		t.Fatalf("code 512: %v", v)
	}
	for c := uint16(1); c <= 1023; c++ {
		v := float64(NTCTempFromCode(c, 3380))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("code %d not finite: %v", c, v)
		}
	}
	// Higher code means colder thermistor.
	if NTCTempFromCode(700, 3380) >= NTCTempFromCode(300, 3380) {
		t.Fatal("NTC temperature should fall as code rises")
	}
}

func TestCurrentFromCode(t *testing.T) {
	if v := CurrentFromCode(1023, 250); !near(v, 250, 1e-4) {
		t.Fatalf("full scale: %v", v)
	}
	if v := CurrentFromCode(0, 250); v != 0 {
		t.Fatalf("zero: %v", v)
	}
}

func TestInverseCodes(t *testing.T) {
	for _, c := range []uint16{0, 1, 100, 498, 500, 900, 1023} {
		if got := DieTempCode(DieTempFromCode(c)); got != c {
			t.Fatalf("DieTempCode round trip %d -> %d", c, got)
		}
	}
	for c := uint16(1); c <= 1023; c++ {
		got := NTCCode(NTCTempFromCode(c, 3380), 3380)
		if d := int(got) - int(c); d < -1 || d > 1 {
			t.Fatalf("NTCCode round trip %d -> %d", c, got)
		}
	}
	if got := DieTempCode(1000); got != 0 {
		t.Fatalf("hot clamp: %d", got)
	}
	if got := DieTempCode(-1000); got != 1023 {
		t.Fatalf("cold clamp: %d", got)
	}
}
