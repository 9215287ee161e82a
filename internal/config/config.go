package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at path, fills unset fields from environment
// variables, then applies defaults. A missing file is not an error; the
// binary starts on defaults alone.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if cfg.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			cfg.Port = p
		}
	}
	if cfg.Env == "" {
		cfg.Env = os.Getenv("NODE_ENV")
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = os.Getenv("CD_DB_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_KEY")
	}
	if cfg.Providers.RapidAPIKey == "" {
		cfg.Providers.RapidAPIKey = os.Getenv("X_RAPIDAPI_KEY")
	}
	if cfg.Providers.DictionaryKey == "" {
		cfg.Providers.DictionaryKey = os.Getenv("DICTIONARY_KEY")
	}
	if len(cfg.AllowedOrigins) == 0 {
		if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
			for _, o := range strings.Split(v, ",") {
				if o = strings.TrimSpace(o); o != "" {
					cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
				}
			}
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.MongoURL == "" {
		cfg.MongoURL = defaultMongoURL
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = defaultMongoDB
	}
	if cfg.Providers.WordsAPIURL == "" {
		cfg.Providers.WordsAPIURL = defaultWordsAPIURL
	}
	if cfg.Providers.DatamuseURL == "" {
		cfg.Providers.DatamuseURL = defaultDatamuseURL
	}
	if cfg.Providers.DictionaryURL == "" {
		cfg.Providers.DictionaryURL = defaultDictionaryURL
	}
	if cfg.Providers.Timeout <= 0 {
		cfg.Providers.Timeout = Duration(defaultProviderTimeout)
	}
	if cfg.Providers.CacheTTL <= 0 {
		cfg.Providers.CacheTTL = Duration(defaultProviderCacheTTL)
	}
	if cfg.Wotd.SourceURL == "" {
		cfg.Wotd.SourceURL = defaultWotdSourceURL
	}
	if cfg.Wotd.ScrapeInterval <= 0 {
		cfg.Wotd.ScrapeInterval = Duration(defaultScrapeInterval)
	}
	if cfg.Wotd.FetchTimeout <= 0 {
		cfg.Wotd.FetchTimeout = Duration(defaultFetchTimeout)
	}
}
