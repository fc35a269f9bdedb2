// Package config loads the studio dev server settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds dev server configuration.
type Config struct {
	Listen string
	API    string
	Assets string
	Page   string
	Log    LogConfig
}

// LogConfig holds logging settings. An empty Dir logs to stdout only.
type LogConfig struct {
	Dir   string
	Level string
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("studio-serve", pflag.ContinueOnError)
	fs.String("listen", "127.0.0.1:4173", "address to serve the studio UI")
	fs.String("api", "http://127.0.0.1:5000", "base URL of the marketplace API")
	fs.String("assets", "ui", "directory containing the built UI files")
	fs.String("page", "studio.html", "studio page checked at startup, relative to assets")
	fs.String("log-dir", "", "directory for rotated request logs")
	fs.String("log-level", "info", "minimum log level")
	return fs
}

// Load reads configuration from defaults, an optional file, env and flags.
// Env var overrides use prefix STUDIO_; STUDIO_CONFIG names the config file.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("listen", "127.0.0.1:4173")
	v.SetDefault("api", "http://127.0.0.1:5000")
	v.SetDefault("assets", "ui")
	v.SetDefault("page", "studio.html")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.level", "info")

	if cfgPath := os.Getenv("STUDIO_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	v.SetEnvPrefix("STUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{
			"listen":    "listen",
			"api":       "api",
			"assets":    "assets",
			"page":      "page",
			"log.dir":   "log-dir",
			"log.level": "log-level",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if strings.TrimSpace(c.API) == "" {
		return Config{}, fmt.Errorf("api base URL is required")
	}
	return c, nil
}
