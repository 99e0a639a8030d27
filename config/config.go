package config

import (
	"time"

	"github.com/spf13/viper"
)

const DevEnv = "dev"
const ProEnv = "pro"

type Config struct {
	Environment   string
	AddressListen string

	DBDriver      string
	DBURL         string
	MigrationsDir string

	JWTSecret    string
	EnableSignup bool

	MediaDir      string
	CacheTTL      time.Duration
	WhitelistHost string
}

// Init loads the config from the environment with viper, with dev-friendly
// defaults. A config.yaml next to the binary overrides nothing critical in
// production since env vars win.
func Init() *Config {
	viper.SetDefault("ENV", ProEnv)
	viper.SetDefault("ADDRESS_LISTEN", "")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_URL", "")
	viper.SetDefault("MIGRATIONS_DIR", "db/migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ENABLE_SIGNUP", false)
	viper.SetDefault("MEDIA_DIR", "media")
	viper.SetDefault("CACHE_TTL", "20s")
	viper.SetDefault("WHITELIST_HOST", "")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // optional file

	return &Config{
		Environment:   viper.GetString("ENV"),
		AddressListen: viper.GetString("ADDRESS_LISTEN"),
		DBDriver:      viper.GetString("DB_DRIVER"),
		DBURL:         viper.GetString("DB_URL"),
		MigrationsDir: viper.GetString("MIGRATIONS_DIR"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		EnableSignup:  viper.GetBool("ENABLE_SIGNUP"),
		MediaDir:      viper.GetString("MEDIA_DIR"),
		CacheTTL:      parseDuration(viper.GetString("CACHE_TTL"), 20*time.Second),
		WhitelistHost: viper.GetString("WHITELIST_HOST"),
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
