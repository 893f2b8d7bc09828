// Package config loads the application configuration.
//
// A YAML file is optional. When a path is given (CONFIG_PATH env var first,
// then the --config flag) the file is read and any env var overrides it;
// without one every value comes from env vars or the env-default tags.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env selects the log format: "dev" is colored text, "staging" and
	// "prod" are JSON.
	Env string `yaml:"env" env:"STUDENTS_ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	Log       Log       `yaml:"log"`
	Storage   Storage   `yaml:"storage"`
	Directory Directory `yaml:"directory"`
	Terminal  Terminal  `yaml:"terminal"`
}

// Log holds logger settings. Logs always go to stderr.
type Log struct {
	// Level is quiet by default so log lines do not clutter the menu.
	Level string `yaml:"level" env:"STUDENTS_LOG_LEVEL" env-default:"error" validate:"oneof=debug info warn error"`
}

// Storage selects the record backend. Both keep data in memory only.
type Storage struct {
	Driver string `yaml:"driver" env:"STUDENTS_STORAGE_DRIVER" env-default:"memory" validate:"oneof=memory sqlite"`
}

// Directory controls id assignment and new-student balances.
type Directory struct {
	FirstID        int64 `yaml:"first_id"        env:"STUDENTS_DIRECTORY_FIRST_ID"        env-default:"1000" validate:"min=0"`
	OpeningBalance int64 `yaml:"opening_balance" env:"STUDENTS_DIRECTORY_OPENING_BALANCE" env-default:"1000"`
}

// Terminal holds presentation settings.
type Terminal struct {
	Title    string `yaml:"title"    env:"STUDENTS_TERMINAL_TITLE"    env-default:"Student Management System" validate:"required"`
	Currency string `yaml:"currency" env:"STUDENTS_TERMINAL_CURRENCY" env-default:"$"`
	NoColor  bool   `yaml:"no_color" env:"STUDENTS_TERMINAL_NO_COLOR"`
}

// PathFromEnv returns CONFIG_PATH, which takes priority over the flag.
func PathFromEnv() string {
	return os.Getenv("CONFIG_PATH")
}

// Load reads the config at path, or from env vars only when path is empty,
// and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read config from env: %w", err)
		}
	} else {
		// Verify the file exists first for a clearer message than the
		// "open: no such file" cleanenv would give.
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
