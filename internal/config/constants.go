package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort     = 8000
	defaultEnv      = "development"
	defaultMongoURL = "mongodb://localhost:27017"
	defaultMongoDB  = "carpediction"

	defaultWordsAPIURL   = "https://wordsapiv1.p.rapidapi.com"
	defaultDatamuseURL   = "https://api.datamuse.com"
	defaultDictionaryURL = "https://dictionaryapi.com"

	defaultProviderTimeout  = 10 * time.Second
	defaultProviderCacheTTL = 10 * time.Minute

	defaultWotdSourceURL = "https://www.merriam-webster.com/word-of-the-day"
	// The scraper fires once at startup and then on this fixed interval.
	defaultScrapeInterval = time.Hour
	defaultFetchTimeout   = 30 * time.Second
)
