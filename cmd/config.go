package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecofleet/internal/core/application/outbox"
	"ecofleet/internal/jobs"
)

const (
	OrderStoreSnapshot   = "snapshot"
	OrderStoreEventStore = "eventstore"
)

type Config struct {
	HTTPPort      string
	HTTPRateLimit float64
	HTTPRateBurst int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	OutboxPollInterval    time.Duration
	OutboxBatchSize       int
	OutboxPublishTimeout  time.Duration
	OutboxPublishAttempts int

	// OrderStore is snapshot (orders table + outbox) or eventstore.
	OrderStore string

	KafkaBrokers       []string
	FleetEventsTopic   string
	KafkaConsumerGroup string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ProcessedTTL  time.Duration

	MongoURI string
	MongoDB  string

	OTLPEndpoint string
	OTLPInsecure bool
}

// ConfigFromEnv reads every setting through getenv, falling back to defaults
// for empty values. All parse errors are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:      p.str("HTTP_PORT", "8080"),
		HTTPRateLimit: p.float("HTTP_RATE_LIMIT", 0),
		HTTPRateBurst: p.int("HTTP_RATE_BURST", 20),

		DBHost:     p.str("DB_HOST", "localhost"),
		DBPort:     p.str("DB_PORT", "5432"),
		DBUser:     p.str("DB_USER", "postgres"),
		DBPassword: p.str("DB_PASSWORD", ""),
		DBName:     p.str("DB_NAME", "ecofleet"),
		DBSslMode:  p.str("DB_SSLMODE", "disable"),

		OutboxPollInterval:    p.duration("OUTBOX_POLL_INTERVAL", jobs.DefaultPollInterval),
		OutboxBatchSize:       p.int("OUTBOX_BATCH_SIZE", outbox.DefaultBatchSize),
		OutboxPublishTimeout:  p.duration("OUTBOX_PUBLISH_TIMEOUT", outbox.DefaultPublishTimeout),
		OutboxPublishAttempts: p.int("OUTBOX_PUBLISH_ATTEMPTS", outbox.DefaultPublishAttempts),

		OrderStore: strings.ToLower(p.str("ORDER_STORE", OrderStoreSnapshot)),

		KafkaBrokers:       p.list("KAFKA_BROKERS"),
		FleetEventsTopic:   p.str("FLEET_EVENTS_TOPIC", "fleet-events"),
		KafkaConsumerGroup: p.str("KAFKA_CONSUMER_GROUP", ""),

		RedisAddr:     p.str("REDIS_ADDR", ""),
		RedisPassword: p.str("REDIS_PASSWORD", ""),
		RedisDB:       p.int("REDIS_DB", 0),
		ProcessedTTL:  p.duration("PROCESSED_MESSAGE_TTL", 0),

		MongoURI: p.str("MONGO_URI", ""),
		MongoDB:  p.str("MONGO_DB", "ecofleet"),

		OTLPEndpoint: p.str("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure: p.bool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	if cfg.OutboxBatchSize <= 0 {
		p.errs = append(p.errs, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", cfg.OutboxBatchSize))
	}
	if cfg.OutboxPollInterval <= 0 {
		p.errs = append(p.errs, fmt.Errorf("OUTBOX_POLL_INTERVAL must be positive, got %s", cfg.OutboxPollInterval))
	}
	if cfg.OutboxPublishAttempts <= 0 {
		p.errs = append(p.errs, fmt.Errorf("OUTBOX_PUBLISH_ATTEMPTS must be positive, got %d", cfg.OutboxPublishAttempts))
	}
	if cfg.OrderStore != OrderStoreSnapshot && cfg.OrderStore != OrderStoreEventStore {
		p.errs = append(p.errs, fmt.Errorf("ORDER_STORE must be %s or %s, got %q",
			OrderStoreSnapshot, OrderStoreEventStore, cfg.OrderStore))
	}

	return cfg, errors.Join(p.errs...)
}

// PostgresDSN is the key=value connection string lib/pq understands.
func (c Config) PostgresDSN() string {
	parts := []string{
		"host=" + c.DBHost,
		"port=" + c.DBPort,
		"user=" + c.DBUser,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSslMode,
	}
	if c.DBPassword != "" {
		parts = append(parts, "password="+c.DBPassword)
	}
	return strings.Join(parts, " ")
}

type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) str(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) int(key string, fallback int) int {
	v := p.str(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (p *envParser) float(key string, fallback float64) float64 {
	v := p.str(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func (p *envParser) bool(key string, fallback bool) bool {
	v := p.str(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

// duration accepts Go durations ("90s") or a bare number of seconds.
func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (p *envParser) list(key string) []string {
	var out []string
	for _, item := range strings.Split(p.str(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
