package config

import (
	"fmt"
	"strings"

	"blue/core"

	"github.com/asaskevich/govalidator"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefix of the environment variables overriding config keys,
// BLUE_DB_DSN overrides db.dsn
const EnvPrefix = "BLUE"

func defaults(v *viper.Viper) {
	v.SetDefault("port", 9000)
	v.SetDefault("db.dialect", "sqlite3")
	v.SetDefault("db.dsn", "blue.db")
	v.SetDefault("db.debug", false)
	v.SetDefault("snapshot", "")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("cache.expiration", "10m")
	v.SetDefault("monitor.schedule", "@every 1m")
}

// Load load config file, an empty configFile loads defaults and environment only
func Load(configFile string, cfg *core.Config) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	err := v.Unmarshal(cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "json"
		// uint256, address and hash values are quoted strings
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		)
	})
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	return nil
}
