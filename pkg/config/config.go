package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables overriding config.json, keyed by setting
var environment = map[string]string{
	"solver":    "TIMETABLE_SOLVER",
	"timeout":   "TIMETABLE_TIMEOUT",
	"probe":     "TIMETABLE_PROBE",
	"log_level": "TIMETABLE_LOG_LEVEL",
}

type Config struct {
	Solver   string        `mapstructure:"solver" validate:"oneof=backtracking exhaustive"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"` // Zero disables the deadline
	Probe    bool          `mapstructure:"probe"`
	LogLevel string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

func Default() Config {
	return Config{
		Solver:   "backtracking",
		Timeout:  0,
		Probe:    true,
		LogLevel: "info",
	}
}

// Load layers the defaults, the JSON file at configPath (skipped when empty), the dotenv file at envPath
// (skipped when missing) and the process environment, in that order
func Load(configPath, envPath string) (Config, error) {
	config := Default()

	if configPath != "" {
		bytes, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("cannot read config file: %w", err)
		}

		var configJson map[string]any
		if err := json.Unmarshal(bytes, &configJson); err != nil {
			return Config{}, fmt.Errorf("cannot parse config file: %w", err)
		}
		if err := decode(configJson, &config); err != nil {
			return Config{}, err
		}
	}

	if envPath != "" {
		// Variables already set in the process take precedence over the file
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load env file: %w", err)
		}
	}

	overrides := make(map[string]any)
	for key, variable := range environment {
		if value, ok := os.LookupEnv(variable); ok {
			overrides[key] = value
		}
	}
	if err := decode(overrides, &config); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func decode(input map[string]any, config *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           config,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("cannot decode configuration: %w", err)
	}
	return nil
}

// Logger builds a production logger at the configured level, or a development one when verbose is set
func (config Config) Logger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	level, err := zapcore.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{"stderr"}
	return zapConfig.Build()
}
