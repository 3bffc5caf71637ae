// Package config loads node settings from configs/config.yml, CLIMATE_*
// environment variables and command-line flags bound into viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"room_climate/internal/actuator"
	"room_climate/internal/models"
	"room_climate/internal/service"
)

const (
	// DefaultConfigDir is searched for config.yml.
	DefaultConfigDir = "configs"
	// EnvPrefix prefixes every environment override, e.g. CLIMATE_TEMPERATURE_MIN.
	EnvPrefix = "CLIMATE"
)

var (
	errTempRange     = errors.New("temperature.min must not exceed temperature.max")
	errInterval      = errors.New("intervals must be positive")
	errInitialMode   = errors.New("climate.initial_mode must be off, cooling or heating")
	errModeDisabled  = errors.New("climate.initial_mode selects a disabled system")
	errInfoChunk     = errors.New("info.max_chunk must be positive")
	errMQTTBroker    = errors.New("mqtt.broker is required when mqtt is enabled")
	errJournalBuffer = errors.New("journal.buffer must not be negative")
)

type Config struct {
	Port        string            `mapstructure:"port"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Journal     JournalConfig     `mapstructure:"journal"`
	Temperature TemperatureConfig `mapstructure:"temperature"`
	Features    FeaturesConfig    `mapstructure:"features"`
	Info        InfoConfig        `mapstructure:"info"`
	Climate     ClimateConfig     `mapstructure:"climate"`
	Ventilation VentilationConfig `mapstructure:"ventilation"`
	MQTT        MQTTConfig        `mapstructure:"mqtt"`
	GPIO        GPIOConfig        `mapstructure:"gpio"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File is a rotatelogs pattern; empty logs to stdout only.
	File string `mapstructure:"file"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type JournalConfig struct {
	Buffer int `mapstructure:"buffer"`
}

type TemperatureConfig struct {
	Min             int           `mapstructure:"min"`
	Max             int           `mapstructure:"max"`
	SensingInterval time.Duration `mapstructure:"sensing_interval"`
	SimInterval     time.Duration `mapstructure:"sim_interval"`
}

type FeaturesConfig struct {
	Simulation  bool `mapstructure:"simulation"`
	Cooling     bool `mapstructure:"cooling"`
	Heating     bool `mapstructure:"heating"`
	Ventilation bool `mapstructure:"ventilation"`
	REST        bool `mapstructure:"rest"`
}

type InfoConfig struct {
	Message  string `mapstructure:"message"`
	MaxChunk int    `mapstructure:"max_chunk"`
}

type ClimateConfig struct {
	InitialMode string `mapstructure:"initial_mode"`
}

type VentilationConfig struct {
	Initial bool `mapstructure:"initial"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	Topic       string `mapstructure:"topic"`
	SystemTopic string `mapstructure:"system_topic"`
}

type GPIOConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Chip        string `mapstructure:"chip"`
	Cooling     int    `mapstructure:"cooling"`
	Heating     int    `mapstructure:"heating"`
	Ventilation int    `mapstructure:"ventilation"`
}

// SetDefaults registers every key, so environment overrides apply even
// without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("db.path", "climate.db")
	v.SetDefault("journal.buffer", 256)

	v.SetDefault("temperature.min", service.DefaultTempMin)
	v.SetDefault("temperature.max", service.DefaultTempMax)
	v.SetDefault("temperature.sensing_interval", service.DefaultSensingInterval)
	v.SetDefault("temperature.sim_interval", service.DefaultSimInterval)

	v.SetDefault("features.simulation", true)
	v.SetDefault("features.cooling", true)
	v.SetDefault("features.heating", true)
	v.SetDefault("features.ventilation", true)
	v.SetDefault("features.rest", true)

	v.SetDefault("info.message", service.DefaultInfoMessage)
	v.SetDefault("info.max_chunk", service.DefaultInfoMaxChunk)

	v.SetDefault("climate.initial_mode", string(models.StatusOff))
	v.SetDefault("ventilation.initial", false)

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "room-climate")
	v.SetDefault("mqtt.topic", "room/climate/temperature")
	v.SetDefault("mqtt.system_topic", "room/climate/system")

	v.SetDefault("gpio.enabled", false)
	v.SetDefault("gpio.chip", "gpiochip0")
	v.SetDefault("gpio.cooling", actuator.DefaultLineCooling)
	v.SetDefault("gpio.heating", actuator.DefaultLineHeating)
	v.SetDefault("gpio.ventilation", actuator.DefaultLineVentilation)
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"log-level": "log.level",
	"log-file":  "log.file",
	"port":      "port",
	"db-path":   "db.path",
}

// BindFlags binds the flags of fs that exist in flagKeys to their config keys.
// A flag that was not set on the command line never overrides the file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads config.yml from dir (a missing file is fine), applies CLIMATE_*
// overrides and validates the result.
func Load(v *viper.Viper, dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultConfigDir
	}
	SetDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.Temperature.Min > c.Temperature.Max {
		return fmt.Errorf("%w: %d > %d", errTempRange, c.Temperature.Min, c.Temperature.Max)
	}
	if c.Temperature.SensingInterval <= 0 || c.Temperature.SimInterval <= 0 {
		return errInterval
	}
	if c.Info.MaxChunk <= 0 {
		return errInfoChunk
	}
	if c.Journal.Buffer < 0 {
		return errJournalBuffer
	}

	mode, ok := models.ParseClimateStatus(strings.ToLower(c.Climate.InitialMode))
	if !ok {
		return fmt.Errorf("%w: %q", errInitialMode, c.Climate.InitialMode)
	}
	if (mode == models.StatusCooling && !c.Features.Cooling) || (mode == models.StatusHeating && !c.Features.Heating) {
		return fmt.Errorf("%w: %s", errModeDisabled, mode)
	}

	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errMQTTBroker
	}
	return nil
}

// ServiceOptions converts the settings into service options.
// Validate must have passed.
func (c *Config) ServiceOptions() service.Options {
	mode, _ := models.ParseClimateStatus(strings.ToLower(c.Climate.InitialMode))
	return service.Options{
		TempMin:            c.Temperature.Min,
		TempMax:            c.Temperature.Max,
		SensingInterval:    c.Temperature.SensingInterval,
		SimInterval:        c.Temperature.SimInterval,
		Simulation:         c.Features.Simulation,
		Cooling:            c.Features.Cooling,
		Heating:            c.Features.Heating,
		Ventilation:        c.Features.Ventilation,
		InfoMessage:        c.Info.Message,
		InfoMaxChunk:       c.Info.MaxChunk,
		InitialMode:        mode,
		InitialVentilation: c.Ventilation.Initial && c.Features.Ventilation,
	}
}

// GPIOLines maps each system to its configured output line.
func (c *Config) GPIOLines() actuator.Lines {
	return actuator.Lines{
		models.SystemCooling:     c.GPIO.Cooling,
		models.SystemHeating:     c.GPIO.Heating,
		models.SystemVentilation: c.GPIO.Ventilation,
	}
}
