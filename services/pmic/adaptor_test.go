package pmic

import (
	"context"
	"errors"
	"testing"

	"github.com/edaniels/golog"

	"npm1300-go/drivers/npm1300"
	"npm1300-go/drivers/npm1300/npm1300sim"
	"npm1300-go/errcode"
	"npm1300-go/types"
)

type noDelay struct{}

func (noDelay) DelayMicroseconds(uint32) {}

func newSimAdaptor(t *testing.T, p Params) (*Adaptor, *npm1300sim.Bus) {
	t.Helper()
	bus := npm1300sim.New()
	dev := npm1300.New(bus, npm1300.Config{Delay: noDelay{}})
	return NewAdaptor("pmic0", dev, p, golog.NewTestLogger(t)), bus
}

func TestInitAppliesParams(t *testing.T) {
	on := true
	ad, bus := newSimAdaptor(t, Params{
		NTCType:         "47k",
		AutoVBAT:        &on,
		ChargeCurrentMA: 400,
		VBUSLimitMA:     1000,
		EnableCharger:   &on,
		AutoIBAT:        &on,
	})
	if err := ad.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	checks := []struct {
		reg  npm1300.Reg
		want uint8
	}{
		{npm1300.RegADCNTCRSel, uint8(npm1300.NTC47k)},
		{npm1300.RegADCConfig, 1},
		{npm1300.RegBChgISetMSB, 100},
		{npm1300.RegBChgISetLSB, 0},
		{npm1300.RegVBUSInILim0, uint8(npm1300.VBUSLimit1000mA)},
		{npm1300.RegBChgEnableSet, 1},
		{npm1300.RegADCIBATMeasEn, 1},
	}
	for _, c := range checks {
		if got := bus.Get(c.reg); got != c.want {
			t.Fatalf("%s: got %d want %d", c.reg, got, c.want)
		}
	}
}

func TestInitRejectsBadParams(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{NTCType: "1M"})
	if err := ad.Init(); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("expected invalid_params, got %v", err)
	}
	if w, _ := bus.Counts(); w != 0 {
		t.Fatalf("bad params reached the bus: %d writes", w)
	}
}

func TestCollect(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{NTCBeta: 3380})
	bus.SetRaw(npm1300sim.VBAT, 1023)
	bus.SetNTCTemp(25, 3380)
	bus.Set(npm1300.RegBChgChargeStatus, uint8(npm1300.ChgBatteryDetected|npm1300.ChgConstantCurrent))
	bus.Set(npm1300.RegVBUSInStatus, uint8(npm1300.VBUSPresent))

	s, err := ad.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(s) != 3 || s[0].Kind != types.KindPower || s[1].Kind != types.KindCharger || s[2].Kind != types.KindVBUS {
		t.Fatalf("sample shape: %+v", s)
	}
	power := s[0].Payload.(types.PowerValue)
	if power.VBAT != 5.0 {
		t.Fatalf("vbat: %v", power.VBAT)
	}
	if power.NTCTemp == nil || *power.NTCTemp < 24.5 || *power.NTCTemp > 25.5 {
		t.Fatalf("ntc: %v", power.NTCTemp)
	}
	ch := s[1].Payload.(types.ChargerValue)
	if ch.Phase != types.PhaseCC || ch.Mode != "discharging" || !ch.BatteryDetected {
		t.Fatalf("charger: %+v", ch)
	}
	if !s[2].Payload.(types.VBUSValue).Present {
		t.Fatal("vbus present")
	}
}

func TestCollectOmitsNTCWithoutBeta(t *testing.T) {
	ad, _ := newSimAdaptor(t, Params{})
	s, err := ad.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p := s[0].Payload.(types.PowerValue); p.NTCTemp != nil {
		t.Fatalf("ntc reported without beta: %v", *p.NTCTemp)
	}
}

func TestCapabilities(t *testing.T) {
	ad, _ := newSimAdaptor(t, Params{NTCBeta: 3380})
	caps := ad.Capabilities()
	if len(caps) != 3 {
		t.Fatalf("caps: %+v", caps)
	}
	for _, c := range caps {
		if c.Info.Driver != "npm1300" || c.Info.Addr != npm1300.AddressDefault {
			t.Fatalf("%s info: %+v", c.Kind, c.Info)
		}
	}
	if d := caps[1].Info.Detail.(types.ChargerInfo); d.NTCType != "none" || d.NTCBeta != 3380 {
		t.Fatalf("charger detail: %+v", d)
	}
}

func TestCollectReportsBusError(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	bus.SetFault(func(reg uint16, write bool) error {
		if reg == npm1300.RegADCVSYSResultMSB.Addr() {
			return errors.New("nack")
		}
		return nil
	})
	s, err := ad.Collect(context.Background())
	if errcode.Of(err) != errcode.BusError {
		t.Fatalf("expected bus_error, got %v", err)
	}
	if len(s) == 0 {
		t.Fatal("partial sample expected alongside the error")
	}
}

func TestCollectCancelled(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ad.Collect(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if w, r := bus.Counts(); w+r != 0 {
		t.Fatal("cancelled collect touched the bus")
	}
}

func TestControl(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	bus.SetRaw(npm1300sim.VSYS, 1023)

	cases := []struct {
		method  string
		payload any
		code    errcode.Code
	}{
		{"set_auto_vbat", map[string]any{"enable": true}, errcode.OK},
		{"set_charge_current", map[string]any{"mA": float64(200)}, errcode.OK},
		{"set_charge_current", map[string]any{"mA": 801}, errcode.InvalidParams},
		{"set_charge_current", map[string]any{}, errcode.InvalidPayload},
		{"set_buck_voltage", map[string]any{"buck": 2, "mV": 1800}, errcode.OK},
		{"enable_buck", map[string]any{"buck": 3, "enable": true}, errcode.InvalidParams},
		{"set_led", map[string]any{"led": 0, "on": true}, errcode.OK},
		{"set_led", map[string]any{"led": 7, "on": true}, errcode.InvalidParams},
		{"set_pof_threshold", map[string]any{"mV": 3000}, errcode.OK},
		{"configure_gpio", map[string]any{"pin": 1, "mode": 8, "pull_down": false}, errcode.OK},
		{"set_vbus_limit", map[string]any{"mA": 1500}, errcode.OK},
		{"reboot", nil, errcode.Unsupported},
	}
	for _, c := range cases {
		res, err := ad.Control(c.method, c.payload)
		if got := errcode.Of(err); got != c.code {
			t.Fatalf("%s %v: code %s want %s (%v)", c.method, c.payload, got, c.code, err)
		}
		if err == nil && res.(map[string]any)["ok"] != true {
			t.Fatalf("%s: reply %v", c.method, res)
		}
	}
	if got := bus.Get(npm1300.RegBuck2NormVout); got != 8 {
		t.Fatalf("BUCK2NORMVOUT: %d", got)
	}
	if got := bus.Get(npm1300.RegPOFConfig) >> 2; got != uint8(npm1300.POF3V0) {
		t.Fatalf("POF threshold: %d", got)
	}
	if got := bus.Get(npm1300.RegGPIOMode0 + 1); got != uint8(npm1300.GPOLogic1) {
		t.Fatalf("GPIOMODE1: %d", got)
	}
}

func TestControlUnsafePOF(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	bus.SetVolts(npm1300sim.VSYS, 3.0)
	_, err := ad.Control("set_pof_threshold", map[string]any{"mV": 3500})
	if errcode.Of(err) != errcode.UnsafeSetting {
		t.Fatalf("expected unsafe_setting, got %v", err)
	}
	if !errors.Is(err, npm1300.ErrInvalidPofVSYSThreshold) {
		t.Fatal("cause lost")
	}
}

func TestControlLogsFailures(t *testing.T) {
	bus := npm1300sim.New()
	dev := npm1300.New(bus, npm1300.Config{Delay: noDelay{}})
	logger, logs := golog.NewObservedTestLogger(t)
	ad := NewAdaptor("pmic0", dev, Params{}, logger)

	if _, err := ad.Control("set_led", map[string]any{"led": 9, "on": true}); err == nil {
		t.Fatal("expected error")
	}
	if n := logs.FilterMessage("control failed").Len(); n != 1 {
		t.Fatalf("control failure logs: %d", n)
	}
}

func TestDecodeParams(t *testing.T) {
	var p Params
	raw := map[string]any{"addr": 107, "ntc_type": "10k", "ntc_beta": 3435.0, "sample_every_ms": 250}
	if err := DecodeJSON(raw, &p); err != nil {
		t.Fatal(err)
	}
	if p.Addr != 0x6B || p.NTCType != "10k" || p.NTCBeta != 3435 || p.SampleEveryMS != 250 {
		t.Fatalf("decoded: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestCollectAbsentThermistor(t *testing.T) {
	// NTC channel left at code 0.
	ad, _ := newSimAdaptor(t, Params{NTCBeta: 3380})
	_, err := ad.Collect(context.Background())
	if got := errcode.Of(err); got != errcode.UnexpectedState {
		t.Fatalf("absent thermistor: code %s (%v)", got, err)
	}
	if !errors.Is(err, npm1300.ErrNoNTC) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestControlRejectsFractionalNumbers(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	cases := []struct {
		method  string
		payload any
	}{
		{"set_charge_current", map[string]any{"mA": 100.7}},
		{"set_led", map[string]any{"led": 0.5, "on": true}},
		{"configure_gpio", map[string]any{"pin": 1.5, "mode": 8}},
		{"configure_gpio", map[string]any{"mode": 8}},
	}
	for _, c := range cases {
		if _, err := ad.Control(c.method, c.payload); errcode.Of(err) != errcode.InvalidPayload {
			t.Fatalf("%s %v: expected invalid_payload, got %v", c.method, c.payload, err)
		}
	}
	if w, _ := bus.Counts(); w != 0 {
		t.Fatalf("rejected payloads reached the bus: %d writes", w)
	}
}

func TestControlConfigureGPIOFromJSON(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	raw := []byte(`{"pin": 2, "mode": 9, "drive_6mA": true, "pull_down": false, "open_drain": true}`)
	if _, err := ad.Control("configure_gpio", raw); err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		reg  npm1300.Reg
		want uint8
	}{
		{npm1300.RegGPIOMode0 + 2, uint8(npm1300.GPOLogic0)},
		{npm1300.RegGPIODrive0 + 2, uint8(npm1300.GPIODrive6mA)},
		{npm1300.RegGPIOPDEn0 + 2, 0},
		{npm1300.RegGPIOOpenDrain0 + 2, 1},
	}
	for _, c := range checks {
		if got := bus.Get(c.reg); got != c.want {
			t.Fatalf("%s: got %d want %d", c.reg, got, c.want)
		}
	}
}

func TestControlAutoIBAT(t *testing.T) {
	ad, bus := newSimAdaptor(t, Params{})
	if _, err := ad.Control("set_auto_ibat", map[string]any{"enable": true}); err != nil {
		t.Fatal(err)
	}
	if got := bus.Get(npm1300.RegADCIBATMeasEn); got != 1 {
		t.Fatalf("ADCIBATMEASEN: %d", got)
	}
	if _, err := ad.Control("set_auto_ibat", nil); errcode.Of(err) != errcode.InvalidPayload {
		t.Fatalf("missing enable: %v", err)
	}
}
