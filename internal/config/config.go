package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	v *viper.Viper
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{v: viper.New()}

	setDefaults(c.v)

	return c
}

// Load merges yaml files in order, later files override earlier ones. It
// reports whether at least one file was read.
func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		c.v.SetConfigFile(name)

		if err := c.v.MergeInConfig(); err != nil {
			slog.Info("error loading config", slog.String("file", name), slog.Any("error", err))
		} else {
			loaded = true
		}
	}

	return loaded
}

// LoadEnv makes PREFIX_SECTION_KEY override section.key.
func (c *AppConfig) LoadEnv(prefix string) {
	c.v.SetEnvPrefix(strings.TrimSuffix(prefix, "_"))
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()
}

func (c *AppConfig) Bool(key string) bool {
	return c.v.GetBool(key)
}

func (c *AppConfig) String(key string) string {
	return c.v.GetString(key)
}

func (c *AppConfig) Duration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *AppConfig) Set(key string, v any) {
	c.v.Set(key, v)
}

func (c *AppConfig) APIAddr() string {
	return c.v.GetString("api_addr")
}

func (c *AppConfig) DB() string {
	return c.v.GetString("db")
}

func (c *AppConfig) Debug() bool {
	return c.v.GetBool("debug")
}

func (c *AppConfig) Metrics() bool {
	return c.v.GetBool("metrics")
}

func (c *AppConfig) JWTSecret() string {
	return c.v.GetString("auth.jwt_secret")
}

func (c *AppConfig) TrustedHeader() string {
	return c.v.GetString("auth.trusted_header")
}

func (c *AppConfig) EmailClaim() string {
	return c.v.GetString("auth.email_claim")
}

// InviteTTL is zero for invites that never expire.
func (c *AppConfig) InviteTTL() time.Duration {
	return c.v.GetDuration("invite.ttl")
}

func (c *AppConfig) InviteBaseURL() string {
	return strings.TrimSuffix(c.v.GetString("invite.base_url"), "/")
}

func (c *AppConfig) IdentityCacheTTL() time.Duration {
	return c.v.GetDuration("identity.cache_ttl")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_addr", ":8080")
	v.SetDefault("db", "projtrack.sqlite")
	v.SetDefault("debug", false)
	v.SetDefault("metrics", true)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.trusted_header", "")
	v.SetDefault("auth.email_claim", "email")

	v.SetDefault("invite.ttl", "168h")
	v.SetDefault("invite.base_url", "")

	v.SetDefault("identity.cache_ttl", "30s")
}
