package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ParkAPIBaseURL string        // park backend base URL (ex: https://api.enjoypark.ext/api)
	ParkAPITimeout time.Duration // HTTP timeout for park backend calls (default: 15s)

	PromoFile             string        // path to the promos.yaml file (optional, empty = promos disabled)
	CatalogReloadInterval time.Duration // interval to reload the park catalog (default: 1h)
	PromoReloadInterval   time.Duration // interval to reload promos.yaml (default: 24h)
	GCInterval            time.Duration // interval to run garbage collection (default: 24h)
	GCThreshold           time.Duration // age after which dead promo codes are purged (default: 720h)

	GateSecret string // HMAC secret for gate QR payloads (optional, empty = gate disabled)
	AdminToken string // bearer token for /admin routes (optional, empty = admin disabled)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // allowed CORS origins for the app frontend (optional, empty = same-origin only)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("COMPANION_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("COMPANION_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("COMPANION_LOG_LEVEL", "info"),
		PrettyLog: mustBool("COMPANION_PRETTY_LOG", true),

		// Park backend
		ParkAPIBaseURL: requireEnv("COMPANION_PARK_API_URL"),
		ParkAPITimeout: mustDuration("COMPANION_PARK_API_TIMEOUT", 15*time.Second),

		// Promo / catalog sources
		PromoFile:             getenv("COMPANION_PROMO_FILE", ""), // Optional, empty = promos disabled
		CatalogReloadInterval: mustDuration("COMPANION_CATALOG_RELOAD_INTERVAL", time.Hour),
		PromoReloadInterval:   mustDuration("COMPANION_PROMO_RELOAD_INTERVAL", 24*time.Hour),
		GCInterval:            mustDuration("COMPANION_GC_INTERVAL", 24*time.Hour),
		GCThreshold:           mustDuration("COMPANION_GC_THRESHOLD", 720*time.Hour),

		// Admin surfaces
		GateSecret: getenv("COMPANION_GATE_SECRET", ""), // Optional, empty = gate verification disabled
		AdminToken: getenv("COMPANION_ADMIN_TOKEN", ""), // Optional, empty = admin routes disabled

		// Redis settings
		RedisAddr:             requireEnv("COMPANION_REDIS_ADDR"),
		RedisUser:             getenv("COMPANION_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("COMPANION_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("COMPANION_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("COMPANION_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: parseList(getenv("COMPANION_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseList(getenv("COMPANION_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("COMPANION_TRUST_PROXY", true),
		CORSOrigins:  parseList(getenv("COMPANION_CORS_ORIGINS", "")),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: COMPANION_REDIS_PASSWORD is required when COMPANION_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		cfgCopy.GateSecret = "***REDACTED***"
		cfgCopy.AdminToken = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
