package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pders01/crossover/internal/validation"
	"github.com/spf13/viper"
)

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Search SearchConfig `mapstructure:"search"`
	Cache  CacheConfig  `mapstructure:"cache"`
	UI     UIConfig     `mapstructure:"ui"`
	Media  MediaConfig  `mapstructure:"media"`
	Keys   KeyConfig    `mapstructure:"keys"`
	Log    LogConfig    `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	RateBurst   int           `mapstructure:"rate_burst"`
}

type SearchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	BlurGrace      time.Duration `mapstructure:"blur_grace"`
	MinQueryLength int           `mapstructure:"min_query_length"`
	SkeletonCards  int           `mapstructure:"skeleton_cards"`
}

type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Path      string        `mapstructure:"path"`
	TTL       time.Duration `mapstructure:"ttl"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl"`
}

type UIConfig struct {
	Colors             UIColors `mapstructure:"colors"`
	DefaultMode        string   `mapstructure:"default_mode"`
	IncludeAdult       bool     `mapstructure:"include_adult"`
	IncludeAdaptations bool     `mapstructure:"include_adaptations"`
	CopyFile           string   `mapstructure:"copy_file"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

// MediaConfig lists image viewers per platform, tried in order. Names
// refer to entries of the media viewer registry.
type MediaConfig struct {
	Darwin        []string `mapstructure:"darwin"`
	Linux         []string `mapstructure:"linux"`
	Windows       []string `mapstructure:"windows"`
	DefaultOpener string   `mapstructure:"default_opener"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit              string `mapstructure:"quit"`
	ToggleMode        string `mapstructure:"toggle_mode"`
	ToggleAdult       string `mapstructure:"toggle_adult"`
	ToggleAdaptations string `mapstructure:"toggle_adaptations"`
	OpenImage         string `mapstructure:"open_image"`
	CopyTitle         string `mapstructure:"copy_title"`
	Back              string `mapstructure:"back"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	cachePath := filepath.Join(homeDir, ".crossover", "cache.db")

	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:5000",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "crossover/1.0 (https://github.com/pders01/crossover)",
			RateLimit:   10,
			RateBurst:   5,
		},
		Search: SearchConfig{
			Debounce:       300 * time.Millisecond,
			BlurGrace:      100 * time.Millisecond,
			MinQueryLength: 2,
			SkeletonCards:  4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Path:      cachePath,
			TTL:       24 * time.Hour,
			MemoryTTL: 10 * time.Minute,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			DefaultMode: "book",
		},
		Media: MediaConfig{
			Darwin:        []string{"open"},
			Linux:         []string{"feh", "eog", "xdg-open"},
			Windows:       []string{"start"},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:              "q",
				ToggleMode:        "t",
				ToggleAdult:       "a",
				ToggleAdaptations: "d",
				OpenImage:         "o",
				CopyTitle:         "y",
				Back:              "esc",
			},
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("search", cfg.Search)
	v.SetDefault("cache", cfg.Cache)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("media", cfg.Media)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "crossover")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CROSSOVER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyFallbacks(&config, cfg)
	if err := resolvePaths(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyFallbacks fills zero values left behind by partially specified
// config sections.
func applyFallbacks(cfg, defaults *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.HTTPTimeout <= 0 {
		cfg.API.HTTPTimeout = defaults.API.HTTPTimeout
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = defaults.API.UserAgent
	}
	if cfg.Search.Debounce <= 0 {
		cfg.Search.Debounce = defaults.Search.Debounce
	}
	if cfg.Search.BlurGrace <= 0 {
		cfg.Search.BlurGrace = defaults.Search.BlurGrace
	}
	if cfg.Search.MinQueryLength <= 0 {
		cfg.Search.MinQueryLength = defaults.Search.MinQueryLength
	}
	if cfg.Search.SkeletonCards <= 0 {
		cfg.Search.SkeletonCards = defaults.Search.SkeletonCards
	}
	if cfg.UI.DefaultMode == "" {
		cfg.UI.DefaultMode = defaults.UI.DefaultMode
	}
	if cfg.Keys.Modifier == "" {
		cfg.Keys = defaults.Keys
	}
}

// resolvePaths expands and validates the file paths named in cfg.
func resolvePaths(cfg *Config) error {
	v := validation.NewFilePathValidator()
	paths := []struct {
		key  string
		path *string
	}{
		{"cache.path", &cfg.Cache.Path},
		{"log.file", &cfg.Log.File},
		{"ui.copy_file", &cfg.UI.CopyFile},
	}
	for _, p := range paths {
		if *p.path == "" {
			continue
		}
		resolved, err := v.ValidateFile(*p.path)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", p.key, err)
		}
		*p.path = resolved
	}
	return nil
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings for TOML readability
	apiCfg := map[string]interface{}{
		"base_url":     config.API.BaseURL,
		"http_timeout": config.API.HTTPTimeout.String(),
		"user_agent":   config.API.UserAgent,
		"rate_limit":   config.API.RateLimit,
		"rate_burst":   config.API.RateBurst,
	}

	searchCfg := map[string]interface{}{
		"debounce":         config.Search.Debounce.String(),
		"blur_grace":       config.Search.BlurGrace.String(),
		"min_query_length": config.Search.MinQueryLength,
		"skeleton_cards":   config.Search.SkeletonCards,
	}

	cacheCfg := map[string]interface{}{
		"enabled":    config.Cache.Enabled,
		"path":       config.Cache.Path,
		"ttl":        config.Cache.TTL.String(),
		"memory_ttl": config.Cache.MemoryTTL.String(),
	}

	v.Set("api", apiCfg)
	v.Set("search", searchCfg)
	v.Set("cache", cacheCfg)
	v.Set("ui", config.UI)
	v.Set("media", config.Media)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
