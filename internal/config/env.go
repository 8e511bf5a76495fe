package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const EnvPrefix = "TEAMSPLIT_"

// ApplyEnv overrides cfg with TEAMSPLIT_* variables. Variables from envFiles
// are loaded first; missing files are ignored.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}

	return env.ParseWithOptions(cfg, env.Options{
		Prefix: EnvPrefix,
	})
}
