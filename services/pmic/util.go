package pmic

import (
	"encoding/json"
	"math"
	"time"

	"npm1300-go/errcode"
)

func resetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		drainTimer(t)
	}
	t.Reset(d)
}

func drainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}

// DecodeJSON accepts raw JSON (bytes or string) or any JSON-marshalable
// value such as map[string]any.
func DecodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

// Payload accessors. Numbers arrive as float64 from JSON and as int from Go
// callers.

func getInt(payload any, key string) (int, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func getBool(payload any, key string) (bool, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return false, false
	}
	b, ok := m[key].(bool)
	return b, ok
}

func okReply(err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return map[string]any{"ok": true}, nil
}

func badPayload(field string) error {
	return &errcode.E{C: errcode.InvalidPayload, Msg: "missing or invalid " + field}
}
