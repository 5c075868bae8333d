package server

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/edawolf/city-lines-sub002/pkg/errors"
)

// Config holds the HTTP server configuration. All fields have working
// defaults so a zero config starts a file-backed single-instance server.
type Config struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// SceneDir is the directory for the file-backed scene store.
	// Empty means the default under ~/.config/citylines/.
	SceneDir string `toml:"scene_dir"`

	// MongoURI enables the MongoDB scene store when non-empty.
	MongoURI string `toml:"mongo_uri"`

	// CacheBackend selects the artifact cache: "file", "redis" or "none".
	CacheBackend string `toml:"cache_backend"`

	// CacheDir is the directory for the file cache backend.
	// Empty means the default under ~/.cache/citylines/.
	CacheDir string `toml:"cache_dir"`

	// RedisURL is the connection URL for the redis cache backend.
	RedisURL string `toml:"redis_url"`

	// LogLevel sets the log verbosity: "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		CacheBackend: "file",
		LogLevel:     "info",
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if len(meta.Undecoded()) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput,
			"unknown config key %q in %s", meta.Undecoded()[0].String(), path)
	}

	switch cfg.CacheBackend {
	case "", "file", "redis", "none":
	default:
		return cfg, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (want file, redis or none)", cfg.CacheBackend)
	}
	return cfg, nil
}
