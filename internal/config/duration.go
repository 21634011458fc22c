// Package config loads the RepositorySettings document (§6 of spec.md) from
// either a YAML file or the process environment.
package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so it can be parsed from a human-readable
// string ("30s") both out of a YAML document (via encoding/json, which
// sigs.k8s.io/yaml converts YAML into) and out of an environment variable
// (via encoding.TextUnmarshaler, which github.com/caarlos0/env/v11 honors
// for any field type it doesn't know natively).
type Duration struct {
	time.Duration
}

// MarshalJSON renders the duration in its Go string form, e.g. "30s".
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// UnmarshalJSON parses a quoted duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("operation_timeout must be a duration string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("operation_timeout: %w", err)
	}
	d.Duration = parsed
	return nil
}

// UnmarshalText parses a duration string, satisfying encoding.TextUnmarshaler
// for the env-var loading path.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("operation_timeout: %w", err)
	}
	d.Duration = parsed
	return nil
}
