// Package config loads service settings from .env files, an optional YAML
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"diamond-exchange/internal/repository"
	requirement "diamond-exchange/internal/requirementService"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProfileDevelopment = "development"
	ProfileProduction  = "production"
	ProfileTest        = "test"

	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type StoreConfig struct {
	Driver      string `yaml:"driver"`
	DatabaseURL string `yaml:"database_url"`
}

type EventsConfig struct {
	NATSURL        string        `yaml:"nats_url"`
	NATSPrefix     string        `yaml:"nats_prefix"`
	RedisURL       string        `yaml:"redis_url"`
	RedisChannel   string        `yaml:"redis_channel"`
	KafkaBrokers   []string      `yaml:"kafka_brokers"`
	KafkaTopic     string        `yaml:"kafka_topic"`
	PublishTimeout time.Duration `yaml:"publish_timeout"`
}

type DocumentsConfig struct {
	RendererURL    string        `yaml:"renderer_url"`
	RenderTimeout  time.Duration `yaml:"render_timeout"`
	StorageDir     string        `yaml:"storage_dir"`
	StorageBaseURL string        `yaml:"storage_base_url"`
}

// Config holds every runtime setting of the exchange
type Config struct {
	Port              string          `yaml:"port"`
	Profile           string          `yaml:"profile"`
	LogLevel          string          `yaml:"log_level"`
	Consistency       string          `yaml:"consistency"`
	RequirementPolicy string          `yaml:"requirement_policy"`
	JWTSigningKey     string          `yaml:"jwt_signing_key"`
	Store             StoreConfig     `yaml:"store"`
	Events            EventsConfig    `yaml:"events"`
	Documents         DocumentsConfig `yaml:"documents"`
}

// Default returns the settings used when nothing overrides them
func Default() Config {
	return Config{
		Port:              "8080",
		Profile:           ProfileDevelopment,
		LogLevel:          "info",
		RequirementPolicy: string(requirement.PolicyOnePerBuyer),
		Store:             StoreConfig{Driver: DriverMemory},
		Events: EventsConfig{
			NATSPrefix:     "diamond",
			RedisChannel:   "diamond-events",
			KafkaTopic:     "diamond-events",
			PublishTimeout: 5 * time.Second,
		},
		Documents: DocumentsConfig{
			RenderTimeout: 30 * time.Second,
			StorageDir:    "./storage",
		},
	}
}

// Load reads envFiles (".env" when none are given; missing files are
// skipped), then the YAML file at path if path is not empty, then applies
// environment overrides and validates the result.
func Load(path string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"PORT":               &c.Port,
		"PROFILE":            &c.Profile,
		"LOG_LEVEL":          &c.LogLevel,
		"CONSISTENCY":        &c.Consistency,
		"REQUIREMENT_POLICY": &c.RequirementPolicy,
		"JWT_SIGNING_KEY":    &c.JWTSigningKey,
		"STORE_DRIVER":       &c.Store.Driver,
		"DATABASE_URL":       &c.Store.DatabaseURL,
		"NATS_URL":           &c.Events.NATSURL,
		"REDIS_URL":          &c.Events.RedisURL,
		"KAFKA_TOPIC":        &c.Events.KafkaTopic,
		"RENDERER_URL":       &c.Documents.RendererURL,
		"STORAGE_DIR":        &c.Documents.StorageDir,
		"STORAGE_BASE_URL":   &c.Documents.StorageBaseURL,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		c.Events.KafkaBrokers = splitList(v)
	}
	if v, ok := os.LookupEnv("PUBLISH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: PUBLISH_TIMEOUT: %w", err)
		}
		c.Events.PublishTimeout = d
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects unknown enumerated values and missing required settings
func (c Config) Validate() error {
	var errs []error
	switch c.Profile {
	case ProfileDevelopment, ProfileProduction, ProfileTest:
	default:
		errs = append(errs, fmt.Errorf("unknown profile %q", c.Profile))
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("store driver %s needs a database url", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	switch repository.ConsistencyTier(c.Consistency) {
	case "", repository.TierTransactional, repository.TierBestEffort:
	default:
		errs = append(errs, fmt.Errorf("unknown consistency %q", c.Consistency))
	}
	if _, err := requirement.ParsePolicy(c.RequirementPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.Profile == ProfileProduction && c.JWTSigningKey == "" {
		errs = append(errs, errors.New("jwt signing key is required in production"))
	}
	if c.Events.PublishTimeout <= 0 {
		errs = append(errs, errors.New("publish timeout must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Tier returns the configured consistency tier. Production defaults to the
// transactional tier, every other profile to best-effort.
func (c Config) Tier() repository.ConsistencyTier {
	if c.Consistency != "" {
		return repository.ConsistencyTier(c.Consistency)
	}
	if c.Profile == ProfileProduction {
		return repository.TierTransactional
	}
	return repository.TierBestEffort
}
