package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// jsonDuration decodes a duration written either as a Go duration string ("10s",
// "1m30s"), the form YAML files use, or as integer nanoseconds.
type jsonDuration struct {
	value time.Duration
	set   bool
}

func (d *jsonDuration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.value, d.set = v, true
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string like \"10s\" or integer nanoseconds, got %s", data)
	}
	d.value, d.set = time.Duration(n), true
	return nil
}

// UnmarshalJSON accepts "timeout" as a duration string or integer nanoseconds
func (c *LLMConfig) UnmarshalJSON(data []byte) error {
	type plain LLMConfig
	aux := struct {
		*plain
		Timeout jsonDuration `json:"timeout"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Timeout.set {
		c.Timeout = aux.Timeout.value
	}
	return nil
}

// UnmarshalJSON accepts the timeouts as duration strings or integer nanoseconds
func (c *ServerConfig) UnmarshalJSON(data []byte) error {
	type plain ServerConfig
	aux := struct {
		*plain
		ReadTimeout  jsonDuration `json:"read_timeout"`
		WriteTimeout jsonDuration `json:"write_timeout"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ReadTimeout.set {
		c.ReadTimeout = aux.ReadTimeout.value
	}
	if aux.WriteTimeout.set {
		c.WriteTimeout = aux.WriteTimeout.value
	}
	return nil
}
