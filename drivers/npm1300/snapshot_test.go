package npm1300

import (
	"errors"
	"testing"
)

func TestSnapshotKeepsGoodReads(t *testing.T) {
	d, b, _ := newTestDevice()
	b.regs[0x0511] = 0xFF
	b.regs[0x0515] = 0b11 // VBAT LSB
	b.failRead[0x0514] = true
	b.regs[0x0510] = 0x04
	b.regs[0x030A] = 25
	b.regs[0x0334] = uint8(ChgBatteryDetected)

	s := d.Snapshot(0)
	if s.VBAT != 5.0 {
		t.Fatalf("VBAT: %v", s.VBAT)
	}
	if s.VSYS != 0 {
		t.Fatalf("VSYS should stay zero on failure: %v", s.VSYS)
	}
	if !errors.Is(s.Err, ErrTransport) {
		t.Fatalf("Err: %v", s.Err)
	}
	if s.Mode != ModeDischarging || !s.Charger.Has(ChgBatteryDetected) {
		t.Fatalf("status: %+v", s)
	}
	for _, a := range b.writes {
		if a.addr == 0x0501 {
			t.Fatal("NTC measured with beta 0")
		}
	}
}
