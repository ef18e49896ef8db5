package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"cocktail_rig/internal/hardware"
)

// Hardware drivers accepted in hardware.driver.
const (
	DriverSim    = "sim"
	DriverSerial = "serial"
)

// maxStepCeiling keeps a configured step limit well inside time.Duration.
const maxStepCeiling = 3600.0

const (
	defaultEnvFile    = ".env"
	defaultConfigDir  = "configs"
	defaultConfigName = "config"
	envPrefix         = "RIG"

	keySecondsPerOunce = "calibration.seconds_per_ounce"
	keyRecipeAPIKey    = "recipe_source.api_key"
)

type Config struct {
	Port        string            `mapstructure:"port"`
	DB          DBConfig          `mapstructure:"db"`
	Log         LogConfig         `mapstructure:"log"`
	Hardware    HardwareConfig    `mapstructure:"hardware"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
	Pour        PourConfig        `mapstructure:"pour"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Recipe      RecipeConfig      `mapstructure:"recipe_source"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HardwareConfig selects the pump line driver. An empty wiring table means
// the rig's default 12-pump table.
type HardwareConfig struct {
	Driver     string             `mapstructure:"driver"`
	SerialPort string             `mapstructure:"serial_port"`
	Baud       int                `mapstructure:"baud"`
	Wiring     []hardware.PinPair `mapstructure:"wiring"`
}

// PinPairs returns the configured wiring or the default table.
func (h HardwareConfig) PinPairs() []hardware.PinPair {
	if len(h.Wiring) == 0 {
		return hardware.DefaultWiring
	}
	return h.Wiring
}

// CalibrationConfig is read by hand so an unparseable coefficient falls back
// instead of failing the load. Zero means unset; the calibration service then
// applies its own default.
type CalibrationConfig struct {
	SecondsPerOunce float64 `mapstructure:"-"`
}

type MaintenanceConfig struct {
	PrimeSeconds float64 `mapstructure:"prime_seconds"`
	CleanSeconds float64 `mapstructure:"clean_seconds"`
	MaxSeconds   float64 `mapstructure:"max_seconds"`
}

// PourConfig bounds a single ingredient's motor run.
type PourConfig struct {
	MaxStepSeconds float64 `mapstructure:"max_step_seconds"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// RecipeConfig carries the recipe source credential, from
// recipe_source.api_key or OPENAI_API_KEY. It is never logged.
type RecipeConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load reads .env from the working directory, then the config file at path.
// An empty path searches configs/config.yml; a missing file there is not an
// error and leaves the defaults in place.
func Load(path string) (Config, error) {
	return load(path, defaultEnvFile)
}

func load(path, envFile string) (Config, error) {
	if err := loadDotEnv(envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir)
		v.SetConfigName(defaultConfigName)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keySecondsPerOunce, "ONE_OZ_COEFFICIENT", envPrefix+"_CALIBRATION_SECONDS_PER_OUNCE")
	_ = v.BindEnv(keyRecipeAPIKey, "OPENAI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Calibration.SecondsPerOunce = parseCoefficient(v.GetString(keySecondsPerOunce))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotEnv(file string) error {
	if file == "" {
		return nil
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", file, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "rig.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("hardware.driver", DriverSim)
	v.SetDefault("hardware.serial_port", "")
	v.SetDefault("hardware.baud", hardware.DefaultBaud)
	v.SetDefault(keySecondsPerOunce, "")
	v.SetDefault("maintenance.prime_seconds", 5.0)
	v.SetDefault("maintenance.clean_seconds", 10.0)
	v.SetDefault("maintenance.max_seconds", 120.0)
	v.SetDefault("pour.max_step_seconds", 300.0)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault(keyRecipeAPIKey, "")
}

// parseCoefficient returns the configured seconds per ounce, or zero when s
// is empty, unparseable, non-finite or not positive.
func parseCoefficient(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func (c Config) validate() error {
	switch c.Hardware.Driver {
	case DriverSim:
	case DriverSerial:
		if c.Hardware.SerialPort == "" {
			return errors.New("hardware.serial_port is required for the serial driver")
		}
	default:
		return fmt.Errorf("unknown hardware.driver %q (want %s or %s)", c.Hardware.Driver, DriverSim, DriverSerial)
	}
	if c.Maintenance.MaxSeconds <= 0 {
		return fmt.Errorf("maintenance.max_seconds must be > 0, got %v", c.Maintenance.MaxSeconds)
	}
	if p := c.Pour.MaxStepSeconds; p <= 0 || p > maxStepCeiling {
		return fmt.Errorf("pour.max_step_seconds must be in (0, %v], got %v", maxStepCeiling, p)
	}
	for _, d := range []struct {
		key string
		v   float64
	}{
		{"maintenance.prime_seconds", c.Maintenance.PrimeSeconds},
		{"maintenance.clean_seconds", c.Maintenance.CleanSeconds},
	} {
		if d.v <= 0 || d.v > c.Maintenance.MaxSeconds {
			return fmt.Errorf("%s must be in (0, %v], got %v", d.key, c.Maintenance.MaxSeconds, d.v)
		}
	}
	return nil
}
