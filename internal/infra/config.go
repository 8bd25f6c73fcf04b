package infra

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const insecureJWTSecret = "change-me-in-production"

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL    string `env:"DATABASE_URL"`
	PGHost         string `env:"PGHOST" envDefault:"localhost"`
	PGPort         int    `env:"PGPORT" envDefault:"5432"`
	PGUser         string `env:"PGUSER" envDefault:"courtside"`
	PGPassword     string `env:"PGPASSWORD" envDefault:"courtside"`
	PGDatabase     string `env:"PGDATABASE" envDefault:"courtside"`
	PGMaxConns     int32  `env:"PG_MAX_CONNS" envDefault:"20"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"false"`
	MigrationsDir  string `env:"MIGRATIONS_DIR"`

	// Redis. An empty URL disables the cache; reads go straight to Postgres.
	RedisURL      string        `env:"REDIS_URL"`
	UsersCacheTTL time.Duration `env:"USERS_CACHE_TTL" envDefault:"60s"`
	CacheCoalesce bool          `env:"CACHE_COALESCE" envDefault:"false"`

	// Identity. CLERK_JWT_KEY (PEM, RS256) wins over JWT_SECRET (HS256).
	JWTSecret              string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	ClerkJWTKey            string `env:"CLERK_JWT_KEY"`
	ClerkIssuer            string `env:"CLERK_ISSUER"`
	ClerkAuthorizedParties string `env:"CLERK_AUTHORIZED_PARTIES"`

	// Server
	APIPort         int           `env:"API_PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CreateRateLimit int           `env:"CREATE_RATE_LIMIT" envDefault:"30"`
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty means clients are identified by the socket address only.
	TrustedProxies string `env:"TRUSTED_PROXIES"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.UsersCacheTTL <= 0 {
		return fmt.Errorf("USERS_CACHE_TTL must be positive, got %s", c.UsersCacheTTL)
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	if c.AllowInsecureDefaults || c.ClerkJWTKey != "" {
		return nil
	}
	if c.JWTSecret == insecureJWTSecret {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set CLERK_JWT_KEY, a strong secret, or ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// AuthorizedParties splits CLERK_AUTHORIZED_PARTIES on commas.
func (c *Config) AuthorizedParties() []string {
	return splitList(c.ClerkAuthorizedParties)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES. A bare address becomes a
// single-host prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, entry := range splitList(c.TrustedProxies) {
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
