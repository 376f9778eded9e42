package scraper

import (
	"os"

	"gopkg.in/yaml.v2"
)

const defaultConfigFile = "config.yaml"

type Config struct {
	Scraping ScrapingConfig `yaml:"scraping"`
}

type ScrapingConfig struct {
	BaseURL        string      `yaml:"base_url"`
	Pages          int         `yaml:"pages"`
	Output         string      `yaml:"output"`
	UserAgent      string      `yaml:"user_agent"`
	TimeoutSeconds int         `yaml:"timeout_seconds"`
	MaxThreads     int         `yaml:"max_threads"`
	Cache          CacheConfig `yaml:"cache"`
}

type CacheConfig struct {
	UsePages bool   `yaml:"use_pages"`
	OutPath  string `yaml:"out_path"`
}

func DefaultConfig() *Config {
	return &Config{
		Scraping: ScrapingConfig{
			BaseURL:        defaultBaseUrl,
			Pages:          0,
			Output:         "restaurants.csv",
			UserAgent:      defaultUserAgent,
			TimeoutSeconds: 30,
			MaxThreads:     8,
			Cache: CacheConfig{
				UsePages: true,
				OutPath:  "./out",
			},
		},
	}
}

// LoadConfig reads the YAML config at path (config.yaml when path is
// empty). A missing file is not an error: defaults apply, then the
// MICHELIN_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = defaultConfigFile
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MICHELIN_BASE_URL"); v != "" {
		cfg.Scraping.BaseURL = v
	}
	if v := os.Getenv("MICHELIN_OUTPUT"); v != "" {
		cfg.Scraping.Output = v
	}
}
