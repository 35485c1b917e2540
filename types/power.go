package types

// ------------------------
// nPM1300 telemetry
// ------------------------

// PowerInfo is the Detail of the power capability.
type PowerInfo struct {
	Units map[string]string `json:"units"`
}

// Value: pmic/<id>/power/value
type PowerValue struct {
	VBAT    float32  `json:"vbat_V"`
	VSYS    float32  `json:"vsys_V"`
	VBUS    float32  `json:"vbus_V"`
	IBat    float32  `json:"ibat_mA"` // positive in both directions; see ChargerValue.Mode
	DieTemp float32  `json:"die_C"`
	NTCTemp *float32 `json:"ntc_C,omitempty"` // nil when no beta is configured
	TS      int64    `json:"ts_ms"`
}

// ChargerInfo is the Detail of the charger capability.
type ChargerInfo struct {
	NTCType string  `json:"ntc_type"`
	NTCBeta float32 `json:"ntc_beta,omitempty"`
}

// ChargerPhase summarises BCHGCHARGESTATUS.
type ChargerPhase string

const (
	PhaseNoBattery ChargerPhase = "no_battery"
	PhaseComplete  ChargerPhase = "complete"
	PhasePaused    ChargerPhase = "paused"
	PhaseTrickle   ChargerPhase = "trickle"
	PhaseCC        ChargerPhase = "cc"
	PhaseCV        ChargerPhase = "cv"
	PhaseIdle      ChargerPhase = "idle"
)

// Value: pmic/<id>/charger/value
type ChargerValue struct {
	Mode            string       `json:"mode"` // "charging", "discharging", "unknown"
	Phase           ChargerPhase `json:"phase"`
	BatteryDetected bool         `json:"battery_detected"`
	Fault           bool         `json:"fault"`
	Status          uint8        `json:"status"`     // raw BCHGCHARGESTATUS
	ErrReason       uint8        `json:"err_reason"` // raw BCHGERRREASON
	TS              int64        `json:"ts_ms"`
}

// Value: pmic/<id>/vbus/value
type VBUSValue struct {
	Present      bool  `json:"present"`
	CurrentLimit bool  `json:"current_limit"`
	OverVoltage  bool  `json:"overvoltage"`
	Suspended    bool  `json:"suspended"`
	Raw          uint8 `json:"raw"`
	TS           int64 `json:"ts_ms"`
}
