package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "HEALTHCOMP_"

// parseEnv overlays cfg with HEALTHCOMP_* variables. Unset variables leave
// the current value alone.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
