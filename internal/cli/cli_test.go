package cli

import (
	"bytes"
	"math"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/PixPMusic/pushmap/internal/config"
	"github.com/PixPMusic/pushmap/internal/mapping"
	"github.com/PixPMusic/pushmap/internal/midi"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pushmap dev\n", out)
}

func TestShow_PrintsBindings(t *testing.T) {
	dir := t.TempDir()
	mappingPath := filepath.Join(dir, "m.json")

	doc := mapping.Document{InstanceID: "abc", KeyGroups: make([]int, mapping.NumKeys)}
	doc.KeyGroups[40] = 2
	doc.Maps[2] = []*mapping.Entry{
		{CC: 71, ModuleID: 2, ParamID: 0},
		{CC: 72, ModuleID: -1, ParamID: -1},
	}
	require.NoError(t, config.SaveDocument(mappingPath, doc))

	out, err := execute(t, "--config", filepath.Join(dir, "config.json"), "show", mappingPath)
	require.NoError(t, err)
	assert.Contains(t, out, "instance abc")
	assert.Contains(t, out, "group 2 (keys 40)")
	assert.Contains(t, out, "0: CC71 VCF Cutoff")
	assert.Contains(t, out, "1: CC72")
	assert.NotContains(t, out, "group 1")
}

func TestShow_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--config", filepath.Join(dir, "config.json"), "show", filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func TestRoot_RejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--config", filepath.Join(dir, "config.json"), "--log-level", "loud", "show")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestRoot_LoggerCarriesInstance(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	a := &app{configPath: filepath.Join(dir, "config.json")}
	require.NoError(t, a.init(&logs))

	a.logger.Info("hello")
	assert.Contains(t, logs.String(), "instance="+a.cfg.InstanceID)
}

func TestRegistryFromConfig(t *testing.T) {
	reg := registryFromConfig(config.DefaultModules())

	cutoff := reg.Param(mapping.Target{ModuleID: 2, ParamID: 0})
	require.NotNil(t, cutoff)
	assert.True(t, cutoff.Bounded())
	assert.Equal(t, 0.5, cutoff.Value())

	tempo := reg.Param(mapping.Target{ModuleID: 4, ParamID: 0})
	require.NotNil(t, tempo)
	assert.False(t, tempo.Bounded())
	assert.True(t, math.IsInf(tempo.Max, 1))
}

func TestRunFlags_OnlyChangedOverride(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	f := &runFlags{}
	f.bind(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--in", "Push", "--rate", "200", "--device", "generic"}))

	cfg := &config.Config{InPort: "old", OutPort: "keep", UpdateRateHz: 400}
	f.apply(cmd, cfg)

	assert.Equal(t, "Push", cfg.InPort)
	assert.Equal(t, midi.DeviceTypeGeneric, cfg.DeviceType)
	assert.Equal(t, "keep", cfg.OutPort)
	assert.Equal(t, 200.0, cfg.UpdateRateHz)
}

func TestAutostart_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("systemd user units are linux only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgPath := filepath.Join(dir, "pushmap", "config.json")

	out, err := execute(t, "--config", cfgPath, "autostart", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled")

	out, err = execute(t, "--config", cfgPath, "autostart", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled (")

	_, err = execute(t, "--config", cfgPath, "autostart", "disable")
	require.NoError(t, err)
	out, err = execute(t, "--config", cfgPath, "autostart", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "disabled")
}
