package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Store backends understood by the admin process.
const (
	BackendMemory    = "memory"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server      ServerConfig   `envPrefix:"ADMIN_HTTP_"`
	BasePath    string         `env:"ADMIN_BASE_PATH" envDefault:"/"`
	LoginPath   string         `env:"ADMIN_LOGIN_PATH"`
	Environment string         `env:"ADMIN_ENVIRONMENT" envDefault:"Development"`
	Log         LogConfig      `envPrefix:"ADMIN_LOG_"`
	Session     SessionConfig  `envPrefix:"ADMIN_SESSION_"`
	CSRF        CSRFConfig     `envPrefix:"ADMIN_CSRF_"`
	Store       StoreConfig    `envPrefix:"ADMIN_STORE_"`
	Firebase    FirebaseConfig `envPrefix:"ADMIN_FIREBASE_"`
	Tracing     TracingConfig  `envPrefix:"ADMIN_OTEL_"`
	Jobs        JobsConfig     `envPrefix:"ADMIN_JOBS_"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Address         string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	CookieName  string        `env:"COOKIE_NAME" envDefault:"admin_session"`
	HashKey     string        `env:"HASH_KEY"`
	BlockKey    string        `env:"BLOCK_KEY"`
	Secure      bool          `env:"SECURE" envDefault:"false"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`
	Lifetime    time.Duration `env:"LIFETIME" envDefault:"12h"`
}

// CSRFConfig controls the double-submit cookie.
type CSRFConfig struct {
	CookieName string `env:"COOKIE_NAME" envDefault:"admin_csrf"`
	HeaderName string `env:"HEADER_NAME" envDefault:"X-CSRF-Token"`
	Secure     bool   `env:"SECURE" envDefault:"false"`
}

// StoreConfig selects and tunes the persistence backend.
type StoreConfig struct {
	Backend               string `env:"BACKEND" envDefault:"memory"`
	SQLitePath            string `env:"SQLITE_PATH" envDefault:"nexora-admin.db"`
	FirestoreProjectID    string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreEmulatorHost string `env:"FIRESTORE_EMULATOR_HOST"`
	CollectionPrefix      string `env:"COLLECTION_PREFIX" envDefault:"admin_"`
	Seed                  bool   `env:"SEED" envDefault:"true"`
}

// FirebaseConfig stores Firebase project settings used for staff authentication.
type FirebaseConfig struct {
	ProjectID string `env:"PROJECT_ID"`
}

// TracingConfig configures the OTLP trace exporter. An empty endpoint disables export.
type TracingConfig struct {
	ExporterEndpoint string `env:"EXPORTER_ENDPOINT"`
	Insecure         bool   `env:"EXPORTER_INSECURE" envDefault:"false"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"nexora-admin"`
}

// JobsConfig holds cron schedules for background jobs.
type JobsConfig struct {
	WarrantySweepSchedule string        `env:"WARRANTY_SWEEP_SCHEDULE" envDefault:"@every 1h"`
	Timeout               time.Duration `env:"TIMEOUT" envDefault:"5m"`
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment variables
// and explicit maps, in that order of precedence.
func Load(opts ...Option) (Config, error) {
	values, err := EnvironmentValues(opts...)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: values}); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if cfg.Store.FirestoreProjectID == "" {
		cfg.Store.FirestoreProjectID = cfg.Firebase.ProjectID
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvironmentValues returns the effective key/value environment map after applying the same
// precedence rules as Load (dotenv < OS env < explicit env map).
func EnvironmentValues(opts ...Option) (map[string]string, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	merge := func(source map[string]string) {
		for key, value := range source {
			values[key] = value
		}
	}

	merge(dotEnvValues)
	if options.useSystemEnv {
		merge(env.ToMap(os.Environ()))
	}
	merge(options.envMap)

	return values, nil
}

func validate(cfg Config) error {
	var invalid []string

	if strings.TrimSpace(cfg.Server.Address) == "" {
		invalid = append(invalid, "Server.Address")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		invalid = append(invalid, "Server.ShutdownTimeout")
	}

	switch cfg.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(cfg.Store.SQLitePath) == "" {
			invalid = append(invalid, "Store.SQLitePath")
		}
	case BackendFirestore:
		if strings.TrimSpace(cfg.Store.FirestoreProjectID) == "" {
			invalid = append(invalid, "Store.FirestoreProjectID")
		}
	default:
		invalid = append(invalid, "Store.Backend")
	}

	if key := cfg.Session.HashKey; key != "" && len(key) < 32 {
		invalid = append(invalid, "Session.HashKey")
	}
	switch len(cfg.Session.BlockKey) {
	case 0, 16, 24, 32:
	default:
		invalid = append(invalid, "Session.BlockKey")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	values, err := godotenv.Read(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}
