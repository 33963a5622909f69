package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name declared in Config tags,
// e.g. GOPHCHAT_DATABASE_DSN.
const EnvPrefix = "GOPHCHAT_"

// parseEnv overlays variables that are set; unset ones keep the current value.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
