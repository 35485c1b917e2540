package types

// ---- Service state (retained, pmic/state) ----

type ServiceState struct {
	Status string `json:"status"` // "running", "stopped"
	Error  string `json:"error,omitempty"`
	TS     int64  `json:"ts_ms"`
}

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDegraded Link = "degraded"
)

// CapabilityStatus is retained on pmic/<id>/<kind>/state.
type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ms"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// ---- Capability kinds & info ----

type Kind string

const (
	KindPower   Kind = "power"
	KindCharger Kind = "charger"
	KindVBUS    Kind = "vbus"
)

// Info envelope each capability exposes (retained).
type Info struct {
	SchemaVersion int    `json:"schema_version"`
	Driver        string `json:"driver"`
	Addr          uint16 `json:"addr"`
	Detail        any    `json:"detail,omitempty"`
}
