package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/yshell/internal/util"
	"gopkg.in/yaml.v3"
)

// EchoMode selects when input lines are echoed back to stdout
type EchoMode string

const (
	EchoAuto   EchoMode = "auto"   // Echo unless stdin and stdout are both terminals
	EchoAlways EchoMode = "always" // Always echo
	EchoNever  EchoMode = "never"  // Never echo
)

// Valid reports whether m is one of the known echo modes
func (m EchoMode) Valid() bool {
	switch m {
	case EchoAuto, EchoAlways, EchoNever:
		return true
	}
	return false
}

// Log verbosity as given on the command line, from 1 (error) to 5 (trace).
// Out of range values are clamped.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultExecName   = "yshell"
	DefaultPrompt     = "% "
	DefaultLogLvl     = util.WarnLevel
	DefaultDebugFlags = ""
	DefaultEcho       = EchoAuto
)

// Config contains runtime configuration values for the shell.
type Config struct {
	ExecName   string        // Program name prefixed to error and exit messages (Default "yshell")
	Prompt     string        // Initial prompt text (Default "% ")
	LogLvl     util.LogLevel // Base log level (Default warn)
	DebugFlags string        // Debug flag characters enabling trace logs per component (Default none)
	Echo       EchoMode      // When to echo input lines (Default auto)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	ExecName   *string   `yaml:"exec_name,omitempty" json:"exec_name,omitempty"`
	Prompt     *string   `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	LogLvl     *int      `yaml:"verbose,omitempty" json:"verbose,omitempty"` // Verbosity 1-5, not a util.LogLevel
	DebugFlags *string   `yaml:"debug,omitempty" json:"debug,omitempty"`
	Echo       *EchoMode `yaml:"echo,omitempty" json:"echo,omitempty"`
}

// Validate reports override values that can never be applied
func (o *ConfigOverride) Validate() error {
	if o.Echo != nil && !o.Echo.Valid() {
		return fmt.Errorf("invalid echo mode %q: must be one of auto, always, never", *o.Echo)
	}
	return nil
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		ExecName:   DefaultExecName,
		Prompt:     DefaultPrompt,
		LogLvl:     DefaultLogLvl,
		DebugFlags: DefaultDebugFlags,
		Echo:       DefaultEcho,
	}
}

// NewConfig returns the default Config with override applied. A nil override
// returns the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
// An invalid echo mode is ignored.
func (c *Config) Merge(override *ConfigOverride) {
	if override.ExecName != nil {
		c.ExecName = *override.ExecName
	}
	if override.Prompt != nil {
		c.Prompt = *override.Prompt
	}
	if override.LogLvl != nil {
		c.LogLvl = VerbosityToLevel(*override.LogLvl)
	}
	if override.DebugFlags != nil {
		c.DebugFlags = *override.DebugFlags
	}
	if override.Echo != nil && override.Echo.Valid() {
		c.Echo = *override.Echo
	}
}

// WantEcho reports whether input lines should be echoed given whether the
// shell is talking to a terminal on both stdin and stdout.
func (c *Config) WantEcho(interactive bool) bool {
	switch c.Echo {
	case EchoAlways:
		return true
	case EchoNever:
		return false
	default:
		return !interactive
	}
}

// VerbosityToLevel maps a 1 (error) to 5 (trace) verbosity to a log level
func VerbosityToLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return logLvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	if err := override.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
