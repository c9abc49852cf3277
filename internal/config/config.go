// Package config reads runtime settings from the environment, optionally
// seeded by a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Store     string `env:"INSPECT_STORE" envDefault:"file"`
	DataDir   string `env:"INSPECT_DATA_DIR" envDefault:"./data"`
	ReportDir string `env:"INSPECT_REPORT_DIR" envDefault:"./reports"`
	Debug     bool   `env:"INSPECT_DEBUG"`
	LogFile   string `env:"INSPECT_LOG_FILE"`

	MongoURI        string `env:"DB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"DB_NAME" envDefault:"boiler"`
	MongoCollection string `env:"DB_COLLECTION" envDefault:"inspections"`
}

// Load reads .env files (missing files are fine) and parses the
// environment into a Config.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return Parse()
}

// Parse reads the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
