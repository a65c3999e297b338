// Package config loads the ntree driver settings from a TOML file, .env
// files and NTREE_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"os"
	goruntime "runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

const (
	FormatList = "list"
	FormatTree = "tree"

	envPrefix = "NTREE_"
)

var ErrInvalidConfig = errors.New("invalid config")

var DefaultEnvFiles = []string{".env", ".env.local"}

// Config holds the driver settings
type Config struct {
	// Strict reports encodings that do not follow the canonical layout
	Strict bool `toml:"strict"`
	// Format selects how a built tree is printed: list or tree
	Format string `toml:"format"`
	// Concurrency bounds the number of batch files processed at once
	Concurrency int    `toml:"concurrency"`
	LogLevel    string `toml:"log_level"`
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the TOML file at path. An empty path yields the defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadEnvFiles loads variables from the env files that exist, later files win.
func ReadEnvFiles(fs afero.Fs, filepaths ...string) (map[string]string, error) {
	found := lo.Filter(filepaths, func(p string, _ int) bool {
		ok, err := afero.Exists(fs, p)
		return ok && err == nil
	})

	env := map[string]string{}
	for _, p := range found {
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return nil, errors.Wrapf(err, "read env file %s", p)
		}
		vars, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "parse env file %s", p)
		}
		for k, v := range vars {
			env[k] = v
		}
	}
	return env, nil
}

// ProcessEnv returns the NTREE_* variables of the running process.
func ProcessEnv() map[string]string {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}
	return env
}

// ApplyEnv overrides settings with NTREE_STRICT, NTREE_FORMAT,
// NTREE_CONCURRENCY and NTREE_LOG_LEVEL when present.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[envPrefix+"STRICT"]; ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%sSTRICT=%q", envPrefix, v)
		}
		c.Strict = strict
	}
	if v, ok := env[envPrefix+"FORMAT"]; ok {
		c.Format = strings.ToLower(v)
	}
	if v, ok := env[envPrefix+"CONCURRENCY"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalidConfig, "%sCONCURRENCY must be int got %q", envPrefix, v)
		}
		c.Concurrency = n
	}
	if v, ok := env[envPrefix+"LOG_LEVEL"]; ok {
		c.LogLevel = strings.ToLower(v)
	}

	c.applyDefaults()
	return c.Validate()
}

func (c *Config) Validate() error {
	if !lo.Contains([]string{FormatList, FormatTree}, c.Format) {
		return errors.Wrapf(ErrInvalidConfig, "format %q, want %s or %s", c.Format, FormatList, FormatTree)
	}
	if c.Concurrency < 1 {
		return errors.Wrapf(ErrInvalidConfig, "concurrency %d", c.Concurrency)
	}
	if !lo.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		return errors.Wrapf(ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	return nil
}

// Debug reports whether debug messages should be printed
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = FormatList
	}
	if c.Concurrency == 0 {
		c.Concurrency = lo.Min([]int{goruntime.GOMAXPROCS(0), goruntime.NumCPU()})
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
