package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brettbedarf/yshell/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with all default values
// when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

// TestNewConfig_WithAllOverride tests that NewConfig properly applies every override.
func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	cfg := NewConfig(override)

	expCfg := &Config{
		ExecName:   *override.ExecName,
		Prompt:     *override.Prompt,
		LogLvl:     util.TraceLevel,
		DebugFlags: *override.DebugFlags,
		Echo:       *override.Echo,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_LogLvlConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verboseValue  int
		expectedLevel util.LogLevel
	}{
		{"verbose_1_error", 1, util.ErrorLevel},
		{"verbose_2_warn", 2, util.WarnLevel},
		{"verbose_3_info", 3, util.InfoLevel},
		{"verbose_4_debug", 4, util.DebugLevel},
		{"verbose_5_trace", 5, util.TraceLevel},
		{"verbose_0_clamped_to_1", 0, util.ErrorLevel},     // clamped to 1
		{"verbose_100_clamped_to_5", 100, util.TraceLevel}, // clamped to 5
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			override := &ConfigOverride{
				LogLvl: &tt.verboseValue,
			}

			cfg := NewConfig(override)

			assert.Equal(t, tt.expectedLevel, cfg.LogLvl,
				"CLI verbose %d should map to util.LogLevel %v", tt.verboseValue, tt.expectedLevel)
		})
	}
}

func TestConfig_Merge_NilOverrideVals(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{})

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values for nil override fields")
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		Prompt: util.Pointer("$ "),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.Prompt = "$ "

	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields and leave rest default")
}

func TestConfig_Merge_EmptyPromptIsSet(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{Prompt: util.Pointer("")})
	assert.Equal(t, "", cfg.Prompt, "an explicit empty prompt is not the same as unset")
}

func TestConfig_Merge_InvalidEchoIgnored(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{Echo: util.Pointer(EchoMode("sometimes"))})
	assert.Equal(t, DefaultEcho, cfg.Echo)
}

func TestConfig_WantEcho(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode        EchoMode
		interactive bool
		want        bool
	}{
		{EchoAuto, true, false},
		{EchoAuto, false, true},
		{EchoAlways, true, true},
		{EchoAlways, false, true},
		{EchoNever, true, false},
		{EchoNever, false, false},
	}
	for _, tt := range tests {
		tt := tt
		cfg := NewConfig(&ConfigOverride{Echo: util.Pointer(tt.mode)})
		assert.Equal(t, tt.want, cfg.WantEcho(tt.interactive),
			"mode %s interactive %t", tt.mode, tt.interactive)
	}
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	type tc struct {
		ext   string
		build func() (*ConfigOverride, []byte)
	}

	cases := []tc{
		{
			ext: ".yaml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".yml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".json",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := json.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
	}

	for _, c := range cases {
		c := c
		name := "valid" + c.ext
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			override, data := c.build()
			dir := t.TempDir()
			path := filepath.Join(dir, "override"+c.ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

func TestLoadConfigOverrideFile_InvalidEcho(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte("echo: sometimes\n"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid echo mode")
}

// TestLoadConfigOverrideFile_NonExistentFile tests error handling
// when trying to load a file that doesn't exist.
func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

// TestLoadConfigOverrideFile_UnsupportedExtension tests error handling
// for file extensions that aren't supported (.txt, .xml, etc).
func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("prompt: x"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestNewConfigFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "yshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"> \"\nverbose: 4\n"), 0o600))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	expCfg := createDefaultCfg()
	expCfg.Prompt = "> "
	expCfg.LogLvl = util.DebugLevel
	assert.Equal(t, expCfg, cfg)
}

// TestNewConfigFromFile_FileError tests that file loading errors
// are properly propagated by the convenience function.
func TestNewConfigFromFile_FileError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewConfigFromFile(path)
	require.Error(t, err)
}

func createDefaultCfg() *Config {
	return &Config{
		ExecName:   DefaultExecName,
		Prompt:     DefaultPrompt,
		LogLvl:     DefaultLogLvl,
		DebugFlags: DefaultDebugFlags,
		Echo:       DefaultEcho,
	}
}

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	return &ConfigOverride{
		ExecName:   util.Pointer("test_shell"),
		Prompt:     util.Pointer("test> "),
		LogLvl:     util.Pointer(TraceVerbose),
		DebugFlags: util.Pointer("ir"),
		Echo:       util.Pointer(EchoNever),
	}
}
