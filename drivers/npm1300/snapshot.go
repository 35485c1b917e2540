package npm1300

// Snapshot collects commonly used telemetry and status.
// Zero values remain where individual reads fail; Err holds the first
// failure.
type Snapshot struct {
	VBAT, VSYS, VBUS float32 // V
	DieTemp, NTCTemp float32 // °C
	IBAT             float32 // mA
	Mode             ChargerMode
	Charger          ChargerStatus
	ChargerErr       ChargerError
	VBUSIn           VBUSStatus
	Err              error
}

// Snapshot measures everything once. NTC is skipped when beta is 0.
func (d *Device) Snapshot(beta float32) Snapshot {
	var s Snapshot
	d.SnapshotInto(&s, beta)
	return s
}

func (d *Device) SnapshotInto(out *Snapshot, beta float32) {
	var s Snapshot
	keep := func(e error) bool {
		if e != nil && s.Err == nil {
			s.Err = e
		}
		return e == nil
	}
	if v, e := d.MeasureVBAT(); keep(e) {
		s.VBAT = v
	}
	if v, e := d.MeasureVSYS(); keep(e) {
		s.VSYS = v
	}
	if v, e := d.MeasureVBUS(); keep(e) {
		s.VBUS = v
	}
	if v, e := d.MeasureDieTemp(); keep(e) {
		s.DieTemp = v
	}
	if beta > 0 {
		if v, e := d.MeasureNTC(beta); keep(e) {
			s.NTCTemp = v
		}
	}
	if v, e := d.ReadChargerMode(); keep(e) {
		s.Mode = v
		if v, e := d.MeasureIBAT(); keep(e) {
			s.IBAT = v
		}
	}
	if v, e := d.ReadChargerStatus(); keep(e) {
		s.Charger = v
	}
	if v, e := d.ReadChargerError(); keep(e) {
		s.ChargerErr = v
	}
	if v, e := d.ReadVBUSStatus(); keep(e) {
		s.VBUSIn = v
	}
	*out = s
}
