package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PixPMusic/pushmap/internal/midi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "config.json"))
	require.NoError(t, err)

	_, err = uuid.Parse(cfg.InstanceID)
	assert.NoError(t, err)
	assert.Equal(t, midi.DeviceTypePush2, cfg.DeviceType)
	assert.Equal(t, 400.0, cfg.UpdateRateHz)
	assert.InDelta(t, 1.0/30, cfg.TimeConstantSeconds, 1e-12)
	assert.InDelta(t, 2.0/3, cfg.EncoderScale, 1e-12)
	assert.Equal(t, filepath.Join(dir, "mappings.json"), cfg.MappingFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Modules)
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.InPort = "Ableton Push 2 Live Port"
	cfg.DeviceType = midi.DeviceTypeGeneric
	cfg.WatchMappingFile = true
	cfg.Modules = []ModuleConfig{{ID: 9, Name: "Mixer", Params: []ParamConfig{{ID: 0, Name: "Level", Max: 1}}}}
	require.NoError(t, cfg.SaveTo(path))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.InstanceID, got.InstanceID)
	assert.Equal(t, cfg.InPort, got.InPort)
	assert.Equal(t, midi.DeviceTypeGeneric, got.DeviceType)
	assert.True(t, got.WatchMappingFile)
	require.NotNil(t, got.GetModule(9))
	assert.Equal(t, "Level", got.GetModule(9).Params[0].Name)
	assert.Nil(t, got.GetModule(1))
}

func TestLoadFrom_PartialFileKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"update_rate_hz": 100, "instance_id": "fixed"}`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.UpdateRateHz)
	assert.Equal(t, "fixed", cfg.InstanceID)
	assert.InDelta(t, 2.0/3, cfg.EncoderScale, 1e-12)
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))
	_, err := LoadFrom(path)
	assert.Error(t, err)
}
