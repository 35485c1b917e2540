package npm1300

import (
	"errors"
	"testing"
)

func TestRegisterTable(t *testing.T) {
	all := Registers()
	if len(all) != int(numRegs) {
		t.Fatalf("registers: got %d want %d", len(all), numRegs)
	}
	seen := map[uint16]string{}
	for _, r := range all {
		if prev, dup := seen[r.Addr]; dup {
			t.Fatalf("address %#04x shared by %s and %s", r.Addr, prev, r.Name)
		}
		seen[r.Addr] = r.Name
		reg, ok := Lookup(r.Name)
		if !ok || reg.Addr() != r.Addr || reg.String() != r.Name {
			t.Fatalf("lookup %s: %v %v", r.Name, reg, ok)
		}
		if r.Access.IsTask() && r.Access.Readable() {
			t.Fatalf("%s: task registers are write-only", r.Name)
		}
	}
}

func TestRegisterAddresses(t *testing.T) {
	cases := []struct {
		reg  Reg
		name string
		addr uint16
	}{
		{RegTaskVBATMeasure, "ADC.TASKVBATMEASURE", 0x0500},
		{RegADCGP1ResultLSBs, "ADC.ADCGP1RESULTLSBS", 0x051A},
		{RegGPIOMode0 + 4, "GPIOS.GPIOMODE4", 0x0604},
		{RegGPIODebounce0 + 2, "GPIOS.GPIODEBOUNCE2", 0x061B},
		{RegLPResetConfig, "SHIP.LPRESETCONFIG", 0x0B06},
	}
	for _, c := range cases {
		if c.reg.Addr() != c.addr || c.reg.String() != c.name {
			t.Fatalf("%s: got %s %#04x", c.name, c.reg, c.reg.Addr())
		}
	}
	if _, ok := Lookup("ADC.NOPE"); ok {
		t.Fatal("unknown name resolved")
	}
	if d := numRegs.Descriptor(); d.Name != "" {
		t.Fatalf("out-of-range descriptor: %+v", d)
	}
}

func TestAccessChecks(t *testing.T) {
	d, b, _ := newTestDevice()
	if err := d.WriteRegister(RegVBUSInStatus, 1); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("expected ErrNotWritable, got %v", err)
	}
	if _, err := d.ReadRegister(RegTaskEnterShipMode); !errors.Is(err, ErrNotReadable) {
		t.Fatalf("expected ErrNotReadable, got %v", err)
	}
	if len(b.writes)+len(b.reads) != 0 {
		t.Fatal("rejected access reached the bus")
	}
}

func TestConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default: %v", err)
	}
	if err := (Config{Address: 0x80}).Validate(); err == nil {
		t.Fatal("8-bit address accepted")
	}
	if d := New(newFakeBus(), Config{}); d.Address() != AddressDefault {
		t.Fatalf("address default: %#x", d.Address())
	}
}
