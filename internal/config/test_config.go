package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:5000",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "crossover-test/1.0",
			RateLimit:   1000,
			RateBurst:   100,
		},
		Search: SearchConfig{
			Debounce:       5 * time.Millisecond,
			BlurGrace:      2 * time.Millisecond,
			MinQueryLength: 2,
			SkeletonCards:  4,
		},
		Cache: CacheConfig{
			Enabled: false,
		},
		UI:    defaultConfig().UI,
		Media: defaultConfig().Media,
		Keys:  defaultConfig().Keys,
		Log:   LogConfig{Level: "off"},
	}
}
