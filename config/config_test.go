package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/godist/common"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
[separate]
enable-2pc = false
max-plan-nodes = 64

[log]
level = "debug"
`)
	require.NoError(t, err)
	assert.False(t, cfg.Separate.Enable2PC)
	assert.Equal(t, 64, cfg.Separate.MaxPlanNodes)
	assert.True(t, cfg.Separate.VerifyPlan, "absent keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative budget", "[separate]\nmax-plan-nodes = -1\n"},
		{"bad level", "[log]\nlevel = \"trace\"\n"},
		{"bad format", "[log]\nformat = \"xml\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.True(t, common.IsPlanError(err, common.InvalidConfigError))
		})
	}

	_, err := Parse("[separate\n")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "godist.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nformat = \"json\"\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
