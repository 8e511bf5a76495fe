package config

import "github.com/s-min-sys/teamsplit/internal/kvstore"

type Config struct {
	Debug  bool   `yaml:"debug" json:"debug" env:"DEBUG"`
	Listen string `yaml:"listen" json:"listen" env:"LISTEN"`

	KVStore kvstore.Config `yaml:"kvStore" json:"kvStore" envPrefix:"KV_"`
}

func (cfg *Config) Valid() bool {
	return cfg.Listen != "" && cfg.KVStore.Valid()
}
