package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers understood by the API server.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Storage
	StorageDriver string // mongo, memory

	// MongoDB
	MongoURI            string
	MongoDatabase       string
	MongoMaxPoolSize    int
	MongoMinPoolSize    int
	MongoConnectTimeout time.Duration

	// Redis (rate limiting)
	RateLimitEnabled bool
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RateLimitReads   int
	RateLimitWrites  int
	RateLimitWindow  time.Duration
	// skip limits for loopback and private-network clients
	RateLimitBypassPrivate bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// RabbitMQ entity events; empty URL disables publishing
	RabbitMQURL         string
	RabbitMQEventsQueue string

	// Elasticsearch; empty addrs disables search
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESProductsIndex    string
	ESUsersIndex       string

	// Event worker
	ReindexOnStart bool

	// Debug metrics (/ecommerce/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "ecommerce"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StorageMongo)),

		MongoURI:            getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getenv("MONGO_DATABASE", "ecommerce"),
		MongoMaxPoolSize:    getint("MONGO_MAX_POOL_SIZE", 10),
		MongoMinPoolSize:    getint("MONGO_MIN_POOL_SIZE", 2),
		MongoConnectTimeout: getdur("MONGO_CONNECT_TIMEOUT", 10*time.Second),

		RateLimitEnabled: getbool("RATE_LIMIT_ENABLED", false),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		RedisDB:          getint("REDIS_DB", 0),
		RateLimitReads:   getint("RATE_LIMIT_READS", 300),
		RateLimitWrites:  getint("RATE_LIMIT_WRITES", 60),
		RateLimitWindow:  getdur("RATE_LIMIT_WINDOW", time.Minute),

		RateLimitBypassPrivate: getbool("RATE_LIMIT_BYPASS_PRIVATE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		RabbitMQURL:         getenv("RABBITMQ_URL", ""),
		RabbitMQEventsQueue: getenv("RABBITMQ_EVENTS_QUEUE", "entity-events"),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESProductsIndex:    getenv("ES_PRODUCTS_INDEX", "products"),
		ESUsersIndex:       getenv("ES_USERS_INDEX", "users"),

		ReindexOnStart: getbool("REINDEX_ON_START", false),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

// SearchEnabled reports whether an Elasticsearch cluster is configured.
func (c *Config) SearchEnabled() bool {
	return len(c.ESAddrs()) > 0
}

// EventsEnabled reports whether entity events should be published to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != "" && c.RabbitMQEventsQueue != ""
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
