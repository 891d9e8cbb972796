// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config parses the process environment into a [Config].

An optional dotenv file is read first. Variables already exported by the
process win over the file.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environments accepted in ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is read once at startup and passed to constructors.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"`

	DatabaseURL    string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseSchema string `env:"DATABASE_SCHEMA" envDefault:"core"`
	MigrationPath  string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// GenreSeedPath is the YAML catalogue applied by the migrate command.
	GenreSeedPath string `env:"GENRE_SEED_PATH" envDefault:"./data/genres.yaml"`

	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// ExtraOrigins are accepted by CORS on top of same-origin requests.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// Load reads the dotenv files (".env" when none is given) and parses the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if !slices.Contains([]string{EnvDevelopment, EnvStaging, EnvProduction}, cfg.Environment) {
		return nil, fmt.Errorf("config: unknown ENVIRONMENT %q", cfg.Environment)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// AllowedOrigins returns ExtraOrigins trimmed, without blanks.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.ExtraOrigins))
	for _, origin := range c.ExtraOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
