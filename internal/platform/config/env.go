// Package config loads Abacus service configuration from the environment.
// Config structs declare their keys through `env` struct tags; by convention
// every Abacus key carries the ABACUS_ prefix so the web and MCP commands can
// share one environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from its env-tagged fields, applying envDefault
// values for unset keys.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
