package pmic

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
	"go.uber.org/zap"

	"npm1300-go/drivers/npm1300"
	"npm1300-go/errcode"
	"npm1300-go/types"
	"npm1300-go/x/mathx"
	"npm1300-go/x/timex"
)

// ---------------- Params supplied via config ----------------

type Params struct {
	Addr            int     `json:"addr,omitempty" yaml:"addr,omitempty"`
	NTCType         string  `json:"ntc_type,omitempty" yaml:"ntc_type,omitempty"` // "none", "10k", "47k", "100k"
	NTCBeta         float32 `json:"ntc_beta,omitempty" yaml:"ntc_beta,omitempty"`
	AutoVBAT        *bool   `json:"auto_vbat,omitempty" yaml:"auto_vbat,omitempty"`
	AutoIBAT        *bool   `json:"auto_ibat,omitempty" yaml:"auto_ibat,omitempty"`
	EnableCharger   *bool   `json:"enable_charger,omitempty" yaml:"enable_charger,omitempty"`
	ChargeCurrentMA int     `json:"charge_current_mA,omitempty" yaml:"charge_current_mA,omitempty"`
	VBUSLimitMA     int     `json:"vbus_limit_mA,omitempty" yaml:"vbus_limit_mA,omitempty"`
	SampleEveryMS   int     `json:"sample_every_ms,omitempty" yaml:"sample_every_ms,omitempty"`
}

func parseNTCType(s string) (npm1300.NTCType, bool) {
	switch s {
	case "", "none":
		return npm1300.NTCNone, true
	case "10k":
		return npm1300.NTC10k, true
	case "47k":
		return npm1300.NTC47k, true
	case "100k":
		return npm1300.NTC100k, true
	default:
		return 0, false
	}
}

// Validate checks values that would otherwise only fail at Init.
func (p Params) Validate() error {
	if p.Addr < 0 || p.Addr > 0x7F {
		return &errcode.E{C: errcode.InvalidParams, Msg: "addr must be a 7-bit address"}
	}
	if _, ok := parseNTCType(p.NTCType); !ok {
		return &errcode.E{C: errcode.InvalidParams, Msg: "unknown ntc_type " + p.NTCType}
	}
	if p.NTCBeta < 0 {
		return &errcode.E{C: errcode.InvalidParams, Msg: "ntc_beta must be positive"}
	}
	if p.ChargeCurrentMA != 0 && (!mathx.Between(p.ChargeCurrentMA, npm1300.ChargeCurrentMin,
		npm1300.ChargeCurrentMax) || p.ChargeCurrentMA%2 != 0) {
		return &errcode.E{C: errcode.InvalidParams, Msg: "charge_current_mA must be even, 32..800"}
	}
	if p.VBUSLimitMA != 0 {
		if p.VBUSLimitMA < 0 || p.VBUSLimitMA > 0xFFFF {
			return &errcode.E{C: errcode.InvalidParams, Msg: "vbus_limit_mA out of range"}
		}
		if _, err := npm1300.VBUSLimitFromMilliamps(uint16(p.VBUSLimitMA)); err != nil {
			return &errcode.E{C: errcode.InvalidParams, Msg: "vbus_limit_mA must be 100 or 200..1500 in 100 mA steps"}
		}
	}
	if p.SampleEveryMS < 0 {
		return &errcode.E{C: errcode.InvalidParams, Msg: "sample_every_ms must not be negative"}
	}
	return nil
}

// Adaptor owns one nPM1300 and serialises every call into it, so the
// sampler and control requests never interleave on the bus.
type Adaptor struct {
	id  string
	mu  sync.Mutex
	dev *npm1300.Device
	p   Params
	log golog.Logger
}

// NewAdaptor wraps dev. A nil logger discards output.
func NewAdaptor(id string, dev *npm1300.Device, p Params, logger golog.Logger) *Adaptor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Adaptor{id: id, dev: dev, p: p, log: logger.With("device", id)}
}

func (a *Adaptor) ID() string { return a.id }

// Init applies the configured settings to the chip.
func (a *Adaptor) Init() error {
	if err := a.p.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	ntc, _ := parseNTCType(a.p.NTCType)
	if err := a.dev.ConfigureNTCResistance(ntc); err != nil {
		return errcode.Wrap("init.ntc_type", err)
	}
	if a.p.AutoVBAT != nil {
		if err := a.dev.ConfigureAutoVBAT(*a.p.AutoVBAT); err != nil {
			return errcode.Wrap("init.auto_vbat", err)
		}
	}
	if a.p.AutoIBAT != nil {
		if err := a.dev.EnableAutoIBAT(*a.p.AutoIBAT); err != nil {
			return errcode.Wrap("init.auto_ibat", err)
		}
	}
	if a.p.VBUSLimitMA != 0 {
		l, _ := npm1300.VBUSLimitFromMilliamps(uint16(a.p.VBUSLimitMA))
		if err := a.dev.SetVBUSCurrentLimit(l); err != nil {
			return errcode.Wrap("init.vbus_limit", err)
		}
	}
	if a.p.ChargeCurrentMA != 0 {
		if err := a.dev.SetChargeCurrent(uint16(a.p.ChargeCurrentMA)); err != nil {
			return errcode.Wrap("init.charge_current", err)
		}
	}
	if a.p.EnableCharger != nil {
		if err := a.dev.EnableCharger(*a.p.EnableCharger); err != nil {
			return errcode.Wrap("init.enable_charger", err)
		}
	}
	a.log.Infow("pmic configured",
		"addr", a.dev.Address(),
		"ntc_type", a.p.NTCType,
		"charge_current_mA", a.p.ChargeCurrentMA,
		"vbus_limit_mA", a.p.VBUSLimitMA,
	)
	return nil
}

func (a *Adaptor) Capabilities() []CapInfo {
	info := func(detail any) types.Info {
		return types.Info{SchemaVersion: 1, Driver: "npm1300", Addr: a.dev.Address(), Detail: detail}
	}
	ntc := a.p.NTCType
	if ntc == "" {
		ntc = "none"
	}
	return []CapInfo{
		{Kind: types.KindPower, Info: info(types.PowerInfo{Units: map[string]string{
			"vbat_V":  "V",
			"vsys_V":  "V",
			"vbus_V":  "V",
			"ibat_mA": "mA",
			"die_C":   "°C",
			"ntc_C":   "°C",
		}})},
		{Kind: types.KindCharger, Info: info(types.ChargerInfo{NTCType: ntc, NTCBeta: a.p.NTCBeta})},
		{Kind: types.KindVBUS, Info: info(nil)},
	}
}

// Collect takes one snapshot. Readings are returned even when some reads
// failed; the error then carries the first failure's code.
func (a *Adaptor) Collect(ctx context.Context) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	s := a.dev.Snapshot(a.p.NTCBeta)
	a.mu.Unlock()

	now := timex.NowMs()
	power := types.PowerValue{
		VBAT:    s.VBAT,
		VSYS:    s.VSYS,
		VBUS:    s.VBUS,
		IBat:    s.IBAT,
		DieTemp: s.DieTemp,
		TS:      now,
	}
	if a.p.NTCBeta > 0 {
		t := s.NTCTemp
		power.NTCTemp = &t
	}
	charger := types.ChargerValue{
		Mode:            s.Mode.String(),
		Phase:           phaseFrom(s.Charger),
		BatteryDetected: s.Charger.Has(npm1300.ChgBatteryDetected),
		Fault:           s.ChargerErr != 0,
		Status:          uint8(s.Charger),
		ErrReason:       uint8(s.ChargerErr),
		TS:              now,
	}
	vbus := types.VBUSValue{
		Present:      s.VBUSIn.Has(npm1300.VBUSPresent),
		CurrentLimit: s.VBUSIn.Has(npm1300.VBUSCurrentLimited),
		OverVoltage:  s.VBUSIn.Has(npm1300.VBUSOverVoltage),
		Suspended:    s.VBUSIn.Has(npm1300.VBUSSuspended),
		Raw:          uint8(s.VBUSIn),
		TS:           now,
	}
	out := Sample{
		{Kind: types.KindPower, Payload: power, TsMs: now},
		{Kind: types.KindCharger, Payload: charger, TsMs: now},
		{Kind: types.KindVBUS, Payload: vbus, TsMs: now},
	}
	if s.Err != nil {
		return out, errcode.Wrap("collect", s.Err)
	}
	return out, nil
}

func phaseFrom(s npm1300.ChargerStatus) types.ChargerPhase {
	switch {
	case !s.Has(npm1300.ChgBatteryDetected):
		return types.PhaseNoBattery
	case s.Has(npm1300.ChgCompleted):
		return types.PhaseComplete
	case s.Has(npm1300.ChgDieTempHigh):
		return types.PhasePaused
	case s.Has(npm1300.ChgTrickle):
		return types.PhaseTrickle
	case s.Has(npm1300.ChgConstantCurrent):
		return types.PhaseCC
	case s.Has(npm1300.ChgConstantVoltage):
		return types.PhaseCV
	default:
		return types.PhaseIdle
	}
}

// Control runs one named operation against the chip.
func (a *Adaptor) Control(method string, payload any) (any, error) {
	res, err := a.control(method, payload)
	if err != nil {
		a.log.Warnw("control failed", "method", method, "code", errcode.Of(err), "error", err)
	} else {
		a.log.Debugw("control", "method", method)
	}
	return res, err
}

func (a *Adaptor) control(method string, payload any) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.dev
	wrap := func(err error) (any, error) { return okReply(errcode.Wrap(method, err)) }

	switch method {
	case "set_auto_vbat":
		if on, ok := getBool(payload, "enable"); ok {
			return wrap(d.ConfigureAutoVBAT(on))
		}
		return nil, badPayload("enable")
	case "set_auto_ibat":
		if on, ok := getBool(payload, "enable"); ok {
			return wrap(d.EnableAutoIBAT(on))
		}
		return nil, badPayload("enable")
	case "enable_charger":
		if on, ok := getBool(payload, "enable"); ok {
			return wrap(d.EnableCharger(on))
		}
		return nil, badPayload("enable")
	case "set_charge_current":
		if mA, ok := getInt(payload, "mA"); ok && mA >= 0 && mA <= 0xFFFF {
			return wrap(d.SetChargeCurrent(uint16(mA)))
		}
		return nil, badPayload("mA")
	case "set_vbus_limit":
		if mA, ok := getInt(payload, "mA"); ok && mA >= 0 && mA <= 0xFFFF {
			l, err := npm1300.VBUSLimitFromMilliamps(uint16(mA))
			if err != nil {
				return wrap(err)
			}
			return wrap(d.SetVBUSCurrentLimit(l))
		}
		return nil, badPayload("mA")
	case "clear_charger_error":
		return wrap(d.ClearChargerError())
	case "enable_buck":
		n, ok1 := getInt(payload, "buck")
		on, ok2 := getBool(payload, "enable")
		if !ok1 || !ok2 {
			return nil, badPayload("buck/enable")
		}
		b, err := buckIndex(n)
		if err != nil {
			return wrap(err)
		}
		return wrap(d.EnableBuck(b, on))
	case "set_buck_voltage":
		n, ok1 := getInt(payload, "buck")
		mV, ok2 := getInt(payload, "mV")
		if !ok1 || !ok2 || mV < 0 || mV > 0xFFFF {
			return nil, badPayload("buck/mV")
		}
		b, err := buckIndex(n)
		if err != nil {
			return wrap(err)
		}
		v, err := npm1300.BuckVoltageFromMillivolts(uint16(mV))
		if err != nil {
			return wrap(err)
		}
		return wrap(d.SetBuckVoltage(b, v))
	case "set_led":
		led, ok1 := getInt(payload, "led")
		on, ok2 := getBool(payload, "on")
		if !ok1 || !ok2 || led < 0 || led > 0xFF {
			return nil, badPayload("led/on")
		}
		return wrap(d.SetLED(uint8(led), on))
	case "enable_pof":
		if on, ok := getBool(payload, "enable"); ok {
			return wrap(d.EnablePOF(on))
		}
		return nil, badPayload("enable")
	case "set_pof_threshold":
		mV, ok := getInt(payload, "mV")
		if !ok || !mathx.Between(mV, 2600, 3500) || mV%100 != 0 {
			return nil, badPayload("mV")
		}
		return wrap(d.SetVSYSThreshold(npm1300.POFThreshold((mV - 2600) / 100)))
	case "configure_gpio":
		var p gpioPayload
		if err := DecodeJSON(payload, &p); err != nil || p.Pin == nil || p.Mode == nil {
			return nil, badPayload("pin/mode")
		}
		if *p.Pin < 0 || *p.Pin > 0xFF || *p.Mode < 0 || *p.Mode > 0xFF {
			return nil, badPayload("pin/mode")
		}
		return wrap(d.ConfigureGPIO(uint8(*p.Pin), p.config()))
	case "enter_ship_mode":
		return wrap(d.EnterShipMode())
	case "enter_hibernate":
		return wrap(d.EnterHibernate())
	default:
		return nil, errcode.Unsupported
	}
}

// gpioPayload is the configure_gpio request body. Absent options keep the
// NewGPIOConfig defaults.
type gpioPayload struct {
	Pin       *int  `json:"pin"`
	Mode      *int  `json:"mode"`
	Drive6mA  bool  `json:"drive_6mA"`
	PullUp    *bool `json:"pull_up"`
	PullDown  *bool `json:"pull_down"`
	OpenDrain *bool `json:"open_drain"`
	Debounce  *bool `json:"debounce"`
}

func (p gpioPayload) config() npm1300.GPIOConfig {
	opts := []npm1300.GPIOOption{npm1300.WithGPIOMode(npm1300.GPIOMode(*p.Mode))}
	if p.Drive6mA {
		opts = append(opts, npm1300.WithGPIODrive(npm1300.GPIODrive6mA))
	}
	if p.PullUp != nil {
		opts = append(opts, npm1300.WithPullUp(*p.PullUp))
	}
	if p.PullDown != nil {
		opts = append(opts, npm1300.WithPullDown(*p.PullDown))
	}
	if p.OpenDrain != nil {
		opts = append(opts, npm1300.WithOpenDrain(*p.OpenDrain))
	}
	if p.Debounce != nil {
		opts = append(opts, npm1300.WithDebounce(*p.Debounce))
	}
	return npm1300.NewGPIOConfig(opts...)
}

// buckIndex maps the 1-based regulator number used in payloads.
func buckIndex(n int) (npm1300.Buck, error) {
	switch n {
	case 1:
		return npm1300.Buck1, nil
	case 2:
		return npm1300.Buck2, nil
	default:
		return 0, npm1300.ErrInvalidBuck
	}
}
