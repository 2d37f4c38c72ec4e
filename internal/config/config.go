package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read before the process environment is parsed.
const DefaultEnvFile = "configs/.env"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseCfg struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"postgres"`
	SslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	// Path is the database file used by the sqlite driver; ":memory:" keeps it in process.
	Path string `env:"DB_PATH" envDefault:"./data/crm.db"`
}

// DSN builds the PostgreSQL connection URL.
func (c DatabaseCfg) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=" + c.SslMode
}

type S3Cfg struct {
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// PublicURL is the base that attachment URLs are built from; defaults to Endpoint/Bucket.
	PublicURL string `env:"S3_PUBLIC_URL"`
}

// Enabled reports whether attachment uploads are configured.
func (c S3Cfg) Enabled() bool {
	return c.Bucket != ""
}

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"debug"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	// JWTSecret enables bearer authentication on the API when set.
	JWTSecret string `env:"AUTH_JWT_SECRET"`
	Database  DatabaseCfg
	S3        S3Cfg
}

// Load reads the optional env files (DefaultEnvFile when none are given) and then
// parses the process environment. Missing env files are not an error; variables
// already present in the environment win over file values.
func Load(envFiles ...string) (Config, error) {
	var cfg Config

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks combinations that env tags cannot express.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: must be %s or %s", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if c.S3.Enabled() && c.S3.Endpoint == "" && c.S3.PublicURL == "" {
		return errors.New("S3_BUCKET is set but neither S3_ENDPOINT nor S3_PUBLIC_URL is configured")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
