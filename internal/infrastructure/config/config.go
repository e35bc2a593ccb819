package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"

	SequenceStore = "store"
	SequenceRedis = "redis"
)

type HTTPOptions struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type LogOptions struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json"`
}

type DynamoDBOptions struct {
	Region             string `env:"AWS_REGION" envDefault:"us-east-1"`
	Endpoint           string `env:"DYNAMODB_ENDPOINT"`
	AccessKeyID        string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey    string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	QuotesTable        string `env:"DYNAMODB_QUOTES_TABLE" envDefault:"quotes"`
	HistoryTable       string `env:"DYNAMODB_HISTORY_TABLE" envDefault:"quote_history"`
	NumbersTable       string `env:"DYNAMODB_NUMBERS_TABLE" envDefault:"quote_numbers"`
	CountersTable      string `env:"DYNAMODB_COUNTERS_TABLE" envDefault:"quote_counters"`
	UsersTable         string `env:"DYNAMODB_USERS_TABLE" envDefault:"users"`
	CompaniesTable     string `env:"DYNAMODB_COMPANIES_TABLE" envDefault:"companies"`
	NotificationsTable string `env:"DYNAMODB_NOTIFICATIONS_TABLE" envDefault:"notifications"`
}

type PostgresOptions struct {
	DSN             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate     bool          `env:"DATABASE_AUTO_MIGRATE" envDefault:"true"`
}

type RedisOptions struct {
	URL            string `env:"REDIS_URL"`
	SequencePrefix string `env:"REDIS_SEQUENCE_PREFIX" envDefault:"quote_seq"`
}

type RateLimitOptions struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	Burst   int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

type QuoteOptions struct {
	TimeZone           string        `env:"BUSINESS_TIMEZONE" envDefault:"America/Sao_Paulo"`
	Sequence           string        `env:"QUOTE_SEQUENCE" envDefault:"store"`
	NumberAttempts     int           `env:"QUOTE_NUMBER_ATTEMPTS" envDefault:"5"`
	TransitionAttempts int           `env:"QUOTE_TRANSITION_ATTEMPTS" envDefault:"3"`
	NotifyTimeout      time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
}

type Configuration struct {
	Storage   string `env:"STORAGE_DRIVER" envDefault:"memory"`
	SeedFile  string `env:"SEED_FILE"`
	HTTP      HTTPOptions
	Log       LogOptions
	DynamoDB  DynamoDBOptions
	Postgres  PostgresOptions
	Redis     RedisOptions
	RateLimit RateLimitOptions
	Quotes    QuoteOptions
}

// Load parses the process environment. .env files are loaded by the
// godotenv autoload import in main before this runs.
func Load() (Configuration, error) {
	return Parse(env.Options{})
}

// Parse is Load with explicit options; tests pass Environment to avoid
// touching the process environment.
func Parse(opts env.Options) (Configuration, error) {
	var c Configuration
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return Configuration{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	c.Quotes.Sequence = strings.ToLower(strings.TrimSpace(c.Quotes.Sequence))
	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

func (c Configuration) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageDynamoDB:
	case StoragePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is %q", StoragePostgres)
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, dynamodb, postgres; got %q", c.Storage)
	}

	switch c.Quotes.Sequence {
	case SequenceStore:
	case SequenceRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required when QUOTE_SEQUENCE is %q", SequenceRedis)
		}
	default:
		return fmt.Errorf("QUOTE_SEQUENCE must be store or redis; got %q", c.Quotes.Sequence)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit needs positive RPS and burst, got %v/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	if c.Quotes.NumberAttempts < 1 || c.Quotes.TransitionAttempts < 1 {
		return fmt.Errorf("quote attempts must be at least 1")
	}
	return nil
}

func (c Configuration) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}
