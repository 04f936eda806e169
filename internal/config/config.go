package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	DBHost string `envconfig:"DB_HOST" default:"postgres"`
	DBPort int    `envconfig:"DB_PORT" default:"5432"`
	DBUser string `envconfig:"DB_USER" default:"arty"`
	DBPass string `envconfig:"DB_PASS" default:"password"`
	DBName string `envconfig:"DB_NAME" default:"arty"`

	NSQLookupd string `envconfig:"NSQ_LOOKUPD" default:"nsqlookupd:4161"`
	NSQDHost   string `envconfig:"NSQD_HOST" default:"nsqd:4150"`
	NSQDHTTP   string `envconfig:"NSQD_HTTP" default:"nsqd:4151"`

	EnableAPI     bool   `envconfig:"ENABLE_API" default:"true"`
	EnableWorker  bool   `envconfig:"ENABLE_WORKER" default:"true"`
	MigrationPath string `envconfig:"MIGRATION_PATH" default:"file://migrations"`

	// Server
	ServerPort        int    `envconfig:"SERVER_PORT" default:"8082"`
	GenerationLogPath string `envconfig:"GENERATION_LOG_PATH" default:"data/logs/generation.log"`

	// Pipeline
	FetchTimeoutMS int    `envconfig:"FETCH_TIMEOUT_MS" default:"8000"`
	FetchMaxChars  int    `envconfig:"FETCH_MAX_CHARS" default:"2000"`
	FlushSize      int    `envconfig:"FLUSH_SIZE" default:"15"`
	GenSeed        int64  `envconfig:"GEN_SEED" default:"0"` // 0 means time-seeded
	LexiconPath    string `envconfig:"LEXICON_PATH"`         // empty means embedded default

	// Resilience
	BootstrapRetryAttempts     int `envconfig:"BOOTSTRAP_RETRY_ATTEMPTS" default:"10"`
	BootstrapRetryDelaySeconds int `envconfig:"BOOTSTRAP_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Ignore errors, env vars might be set in the shell
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBHost == "" {
		return fmt.Errorf("%w: DB_HOST", ErrMissingRequired)
	}
	if c.DBUser == "" {
		return fmt.Errorf("%w: DB_USER", ErrMissingRequired)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingRequired)
	}
	if c.FlushSize < 1 {
		return fmt.Errorf("FLUSH_SIZE must be at least 1, got %d", c.FlushSize)
	}
	if c.FetchMaxChars < 1 {
		return fmt.Errorf("FETCH_MAX_CHARS must be at least 1, got %d", c.FetchMaxChars)
	}
	return nil
}
