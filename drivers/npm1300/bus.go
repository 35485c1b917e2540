package npm1300

// Register access. Every transfer carries the 16-bit register address
// big-endian, followed by the data byte for writes.

func (d *Device) read(r Reg) (uint8, error) {
	desc := r.Descriptor()
	if !desc.Access.Readable() {
		return 0, ErrNotReadable
	}
	d.w[0] = byte(desc.Addr >> 8)
	d.w[1] = byte(desc.Addr)
	if err := d.i2c.Tx(d.addr, d.w[:2], d.r[:1]); err != nil {
		return 0, &TransportError{Op: "read", Addr: desc.Addr, Err: err}
	}
	return d.r[0], nil
}

func (d *Device) write(r Reg, v uint8) error {
	desc := r.Descriptor()
	if !desc.Access.Writable() {
		return ErrNotWritable
	}
	d.w[0] = byte(desc.Addr >> 8)
	d.w[1] = byte(desc.Addr)
	d.w[2] = v
	if err := d.i2c.Tx(d.addr, d.w[:3], nil); err != nil {
		return &TransportError{Op: "write", Addr: desc.Addr, Err: err}
	}
	return nil
}

// trigger starts a task or pulses a set/clear register.
func (d *Device) trigger(r Reg) error { return d.write(r, 1) }

func (d *Device) writeBool(r Reg, on bool) error {
	if on {
		return d.write(r, 1)
	}
	return d.write(r, 0)
}

// modify performs read-modify-write on a RW register.
func (d *Device) modify(r Reg, set, clear uint8) error {
	v, err := d.read(r)
	if err != nil {
		return err
	}
	return d.write(r, (v&^clear)|set)
}

// modifyField replaces the bits under mask with val<<shift.
func (d *Device) modifyField(r Reg, mask, shift, val uint8) error {
	return d.modify(r, (val<<shift)&mask, mask)
}

func (d *Device) setBit(r Reg, bit uint8, on bool) error {
	m := uint8(1) << bit
	if on {
		return d.modify(r, m, 0)
	}
	return d.modify(r, 0, m)
}

// ReadRegister reads any readable register. Intended for diagnostics.
func (d *Device) ReadRegister(r Reg) (uint8, error) { return d.read(r) }

// WriteRegister writes any writable register. Intended for diagnostics.
func (d *Device) WriteRegister(r Reg, v uint8) error { return d.write(r, v) }
