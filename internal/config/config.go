package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/hnrobert/lusers/internal/hostfs"
)

// Environment variables read by FromEnv.
const (
	EnvRoot    = "LUSERS_ROOT"
	EnvFixture = "LUSERS_FIXTURE"
	EnvLogDir  = "LUSERS_LOG_DIR"
	EnvDebug   = "LUSERS_DEBUG"
)

type Config struct {
	// Root is the directory holding etc/passwd and etc/group.
	Root string
	// Fixture, when set, names a YAML fixture used instead of Root.
	Fixture string
	// LogDir enables file logging when set.
	LogDir string
	Debug  bool
}

func Default() Config {
	return Config{Root: hostfs.DefaultRoot}
}

// FromEnv returns Default overridden by any LUSERS_* variables that are set.
func FromEnv() Config {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Config {
	cfg := Default()
	cfg.Root = getenvDefault(lookup, EnvRoot, cfg.Root)
	cfg.Fixture = getenvDefault(lookup, EnvFixture, cfg.Fixture)
	cfg.LogDir = getenvDefault(lookup, EnvLogDir, cfg.LogDir)
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		cfg.Debug = err == nil && b
	}
	return cfg
}

func getenvDefault(lookup func(string) (string, bool), key, def string) string {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def
	}
	return v
}
