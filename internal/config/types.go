package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30m"
// or bare numbers (seconds).
type Duration time.Duration

// D returns the standard library duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs int64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("invalid duration value %q", value.Value)
	}
	*d = Duration(time.Duration(secs) * time.Second)
	return nil
}

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	MongoURL       string          `yaml:"mongo_url"`
	MongoDB        string          `yaml:"mongo_db"`
	RedisURL       string          `yaml:"redis_url"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	JWTSecret      string          `yaml:"jwt_secret"`
	Providers      ProvidersConfig `yaml:"providers"`
	Wotd           WotdConfig      `yaml:"wotd"`
}

// ProvidersConfig configures the external lookup providers.
type ProvidersConfig struct {
	RapidAPIKey   string   `yaml:"rapidapi_key"`
	WordsAPIURL   string   `yaml:"wordsapi_url"`
	DatamuseURL   string   `yaml:"datamuse_url"`
	DictionaryURL string   `yaml:"dictionary_url"`
	DictionaryKey string   `yaml:"dictionary_key"`
	Timeout       Duration `yaml:"timeout"`
	CacheTTL      Duration `yaml:"cache_ttl"`
}

// WotdConfig configures the word-of-the-day scraper.
type WotdConfig struct {
	SourceURL      string   `yaml:"source_url"`
	ScrapeInterval Duration `yaml:"scrape_interval"`
	FetchTimeout   Duration `yaml:"fetch_timeout"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
