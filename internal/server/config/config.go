package config

import "time"

// Config holds runtime settings for the finserver binary.
//
// Fields:
//   - Addr: listen address (host:port).
//   - DatabaseFile: path of the SQLite database file.
//   - SecretKey: HMAC key used to sign access tokens.
//   - AccessTokenValidity: lifetime of issued access tokens.
//   - RefreshTokenValidity: lifetime of issued refresh tokens.
type Config struct {
	Addr                 string
	DatabaseFile         string
	SecretKey            string
	AccessTokenValidity  time.Duration
	RefreshTokenValidity time.Duration
}

// LoadDefaults populates c with sensible defaults. The default secret is
// for local development only; deployments must override it.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.DatabaseFile = "finserver.db"
	c.SecretKey = "dev-secret-change-me"
	c.AccessTokenValidity = 15 * time.Minute
	c.RefreshTokenValidity = 720 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
