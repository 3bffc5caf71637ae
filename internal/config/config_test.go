package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"room_climate/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 10, cfg.Temperature.Min)
	require.Equal(t, 30, cfg.Temperature.Max)
	require.Equal(t, 5*time.Second, cfg.Temperature.SensingInterval)
	require.Equal(t, 20*time.Second, cfg.Temperature.SimInterval)
	require.True(t, cfg.Features.Simulation)
	require.True(t, cfg.Features.REST)
	require.Equal(t, "Hello World!", cfg.Info.Message)
	require.False(t, cfg.MQTT.Enabled)

	opts := cfg.ServiceOptions()
	require.Equal(t, models.StatusOff, opts.InitialMode)
	require.Equal(t, 64, opts.InfoMaxChunk)
}

func TestLoad_FileValues(t *testing.T) {
	dir := writeConfig(t, `
port: "5683"
temperature:
  min: 15
  max: 25
  sensing_interval: 2s
  sim_interval: 1m
features:
  heating: false
climate:
  initial_mode: cooling
ventilation:
  initial: true
gpio:
  cooling: 5
`)
	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)

	require.Equal(t, "5683", cfg.Port)
	require.Equal(t, time.Minute, cfg.Temperature.SimInterval)
	require.False(t, cfg.Features.Heating)
	require.True(t, cfg.Features.Cooling)

	opts := cfg.ServiceOptions()
	require.Equal(t, 15, opts.TempMin)
	require.Equal(t, 2*time.Second, opts.SensingInterval)
	require.Equal(t, models.StatusCooling, opts.InitialMode)
	require.True(t, opts.InitialVentilation)

	lines := cfg.GPIOLines()
	require.Equal(t, 5, lines[models.SystemCooling])
	require.Equal(t, 27, lines[models.SystemHeating])
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLIMATE_TEMPERATURE_MAX", "40")
	t.Setenv("CLIMATE_INFO_MESSAGE", "Hi")

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 40, cfg.Temperature.Max)
	require.Equal(t, "Hi", cfg.Info.Message)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "temperature: [unclosed\n")
	_, err := Load(viper.New(), dir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(viper.New(), t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"min above max", func(c *Config) { c.Temperature.Min = 31 }, errTempRange},
		{"zero sensing interval", func(c *Config) { c.Temperature.SensingInterval = 0 }, errInterval},
		{"negative sim interval", func(c *Config) { c.Temperature.SimInterval = -time.Second }, errInterval},
		{"bad initial mode", func(c *Config) { c.Climate.InitialMode = "defrost" }, errInitialMode},
		{"disabled initial mode", func(c *Config) {
			c.Climate.InitialMode = "heating"
			c.Features.Heating = false
		}, errModeDisabled},
		{"zero chunk", func(c *Config) { c.Info.MaxChunk = 0 }, errInfoChunk},
		{"mqtt without broker", func(c *Config) { c.MQTT.Enabled = true }, errMQTTBroker},
		{"negative journal buffer", func(c *Config) { c.Journal.Buffer = -1 }, errJournalBuffer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}

	cfg := valid()
	cfg.Temperature.Min, cfg.Temperature.Max = 20, 20
	require.NoError(t, cfg.Validate())
}

func TestBindFlags(t *testing.T) {
	dir := writeConfig(t, "port: \"9000\"\nlog:\n  level: warn\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "info", "")
	fs.String("port", "", "")
	require.NoError(t, fs.Parse([]string{"--log-level=debug"}))

	v := viper.New()
	require.NoError(t, BindFlags(v, fs))
	cfg, err := Load(v, dir)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "9000", cfg.Port)
}
