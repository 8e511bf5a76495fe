package kvstore

import (
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
)

const (
	EngineFile   = "file"
	EngineMemory = "memory"
	EngineSQLite = "sqlite"
)

// Storage is a flat string namespace. Removing an absent key is not an error.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

type Config struct {
	Engine      string `yaml:"engine" json:"engine" env:"ENGINE"`
	DataRoot    string `yaml:"dataRoot" json:"dataRoot" env:"DATA_ROOT"`
	PersistFile string `yaml:"persistFile" json:"persistFile" env:"PERSIST_FILE"`
	SQLitePath  string `yaml:"sqlitePath" json:"sqlitePath" env:"SQLITE_PATH"`
}

func (cfg *Config) Valid() bool {
	switch cfg.Engine {
	case "", EngineFile:
		return cfg.DataRoot != ""
	case EngineMemory:
		return true
	case EngineSQLite:
		return cfg.SQLitePath != ""
	}

	return false
}

func New(cfg *Config, debug bool, logger l.Wrapper) (Storage, error) {
	if cfg == nil || !cfg.Valid() {
		return nil, commerr.ErrInvalidArgument
	}

	switch cfg.Engine {
	case "", EngineFile:
		return NewFileStorage(cfg.DataRoot, debug, logger)
	case EngineMemory:
		return NewMemStorage(cfg.PersistFile, logger), nil
	case EngineSQLite:
		stg, err := OpenSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}

		return stg, nil
	}

	return nil, commerr.ErrInvalidArgument
}
