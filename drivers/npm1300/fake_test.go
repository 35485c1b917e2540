package npm1300

import (
	"errors"
	"testing"
)

var errBus = errors.New("nack")

type txn struct {
	addr uint16
	val  uint8
}

// fakeBus is a flat register file that records every transfer.
type fakeBus struct {
	regs      map[uint16]uint8
	writes    []txn
	reads     []uint16
	failRead  map[uint16]bool
	failWrite map[uint16]bool
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		regs:      map[uint16]uint8{},
		failRead:  map[uint16]bool{},
		failWrite: map[uint16]bool{},
	}
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if addr != AddressDefault || len(w) < 2 {
		return errBus
	}
	a := uint16(w[0])<<8 | uint16(w[1])
	if len(r) > 0 {
		b.reads = append(b.reads, a)
		if b.failRead[a] {
			return errBus
		}
		r[0] = b.regs[a]
		return nil
	}
	if len(w) != 3 {
		return errBus
	}
	b.writes = append(b.writes, txn{a, w[2]})
	if b.failWrite[a] {
		return errBus
	}
	b.regs[a] = w[2]
	return nil
}

func (b *fakeBus) wrote(a uint16) (uint8, bool) {
	for i := len(b.writes) - 1; i >= 0; i-- {
		if b.writes[i].addr == a {
			return b.writes[i].val, true
		}
	}
	return 0, false
}

type fakeDelay struct{ calls []uint32 }

func (f *fakeDelay) DelayMicroseconds(us uint32) { f.calls = append(f.calls, us) }

func newTestDevice() (*Device, *fakeBus, *fakeDelay) {
	b := newFakeBus()
	dl := &fakeDelay{}
	return New(b, Config{Delay: dl}), b, dl
}

func near(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func expectWrites(t *testing.T, b *fakeBus, want ...txn) {
	t.Helper()
	if len(b.writes) != len(want) {
		t.Fatalf("writes: got %v want %v", b.writes, want)
	}
	for i := range want {
		if b.writes[i] != want[i] {
			t.Fatalf("write %d: got {%#04x %#x} want {%#04x %#x}", i, b.writes[i].addr, b.writes[i].val, want[i].addr, want[i].val)
		}
	}
}
