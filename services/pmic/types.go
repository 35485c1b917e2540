package pmic

import (
	"time"

	"npm1300-go/errcode"
	"npm1300-go/types"
)

// Reading is one datum for one capability kind.
type Reading struct {
	Kind    types.Kind
	Payload any   // one of the types.*Value structs
	TsMs    int64 // producer timestamp (ms)
}

// Sample is a batch collected together.
type Sample []Reading

// CapInfo describes one capability's retained info document.
type CapInfo struct {
	Kind types.Kind
	Info types.Info
}

// Result emitted by the sampler.
type Result struct {
	ID     string
	Sample Sample
	Err    error
	Code   errcode.Code
}

// SamplerConfig centralises timings and limits.
type SamplerConfig struct {
	Period         time.Duration // time between cycles
	InputQueueSize int
}
