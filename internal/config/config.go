package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// FlightSchedule ties a flight name to an optional recurrence rule. Flights
// without a rule are expected every day.
type FlightSchedule struct {
	Flight string `yaml:"flight" validate:"required"`
	RRule  string `yaml:"rrule,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL     string           `yaml:"-" validate:"required"`
	SpreadsheetID   string           `yaml:"spreadsheetID,omitempty"`
	VerifiedTab     string           `yaml:"verifiedTab,omitempty"`
	ExportDir       string           `yaml:"exportDir,omitempty"`
	ActivationLimit int              `yaml:"activationLimit,omitempty" validate:"omitempty,min=1"`
	FlightSchedules []FlightSchedule `yaml:"flightSchedules,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" will look for "paxcash_config.test.yaml".
// DATABASE_URL is read from the environment, with a local .env file loaded
// first if present.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// .env is optional; a missing file is not an error
	_ = godotenv.Load()
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, schedule := range cfg.FlightSchedules {
		if schedule.RRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(schedule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in flightSchedules[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for paxcash_config.yaml in current directory and
// home directory. If env is provided, it adds it as an extension (e.g.,
// "paxcash_config.test.yaml").
func findConfigFile(env string) (string, error) {
	configFileName := "paxcash_config.yaml"
	if env != "" {
		configFileName = "paxcash_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
