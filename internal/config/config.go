package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "intentpipe"
	ConfigFileName = "config.json"
	DefaultEnvFile = ".env.local"
)

// Config is the fully resolved runtime configuration. It is built once at
// startup and injected into every component; nothing reads ambient
// environment state after Load.
type Config struct {
	DatabaseURL    string
	SerperAPIKey   string
	DepartmentType string
	Proxies        []string

	Crawl  CrawlConfig
	Search SearchConfig
}

// CrawlConfig drives the browser-style crawler adapter.
type CrawlConfig struct {
	BaseURL      string
	Keywords     []string
	MaxPages     int
	PageDelay    time.Duration
	PageJitter   time.Duration
	RetryBackoff time.Duration
}

// SearchConfig drives the search-API adapter.
type SearchConfig struct {
	Endpoint       string
	QueryTemplates []string
	ResultCount    int
	Country        string
	Locale         string
	QueryDelay     time.Duration
	CompanyDelay   time.Duration
	RetryBackoff   time.Duration
}

// fileConfig is the json5 on-disk shape. Durations are plain milliseconds.
type fileConfig struct {
	DepartmentType string            `json:"department_type"`
	Crawl          *fileCrawlConfig  `json:"crawl"`
	Search         *fileSearchConfig `json:"search"`
}

type fileCrawlConfig struct {
	BaseURL        string   `json:"base_url"`
	Keywords       []string `json:"keywords"`
	MaxPages       int      `json:"max_pages"`
	PageDelayMS    int      `json:"page_delay_ms"`
	PageJitterMS   int      `json:"page_jitter_ms"`
	RetryBackoffMS int      `json:"retry_backoff_ms"`
}

type fileSearchConfig struct {
	QueryTemplates []string `json:"query_templates"`
	ResultCount    int      `json:"result_count"`
	Country        string   `json:"country"`
	Locale         string   `json:"locale"`
	QueryDelayMS   int      `json:"query_delay_ms"`
	CompanyDelayMS int      `json:"company_delay_ms"`
	RetryBackoffMS int      `json:"retry_backoff_ms"`
}

func DefaultConfig() Config {
	return Config{
		DepartmentType: "it",
		Crawl: CrawlConfig{
			BaseURL:      "https://xn--pckua2a7gp15o89zb.com",
			Keywords:     []string{"社内SE", "情報システム 求人", "情シス 求人"},
			MaxPages:     10,
			PageDelay:    3 * time.Second,
			PageJitter:   4 * time.Second,
			RetryBackoff: 5 * time.Second,
		},
		Search: SearchConfig{
			Endpoint:       "https://google.serper.dev/search",
			QueryTemplates: []string{"%s 情報システム部 求人", "%s 社内SE 採用"},
			ResultCount:    10,
			Country:        "jp",
			Locale:         "ja",
			QueryDelay:     time.Second,
			CompanyDelay:   500 * time.Millisecond,
			RetryBackoff:   5 * time.Second,
		},
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// LoadEnvFile loads credentials from a dotenv file into the process
// environment. A missing file is only an error when the path was given
// explicitly.
func LoadEnvFile(path string, explicit bool) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// Load resolves the runtime configuration: defaults, then the json5 config
// file, then environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if err := applyFile(&cfg, path); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var fc fileConfig
	if err := json5.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.DepartmentType != "" {
		cfg.DepartmentType = fc.DepartmentType
	}
	if fc.Crawl != nil {
		applyCrawlFile(&cfg.Crawl, fc.Crawl)
	}
	if fc.Search != nil {
		applySearchFile(&cfg.Search, fc.Search)
	}
	return nil
}

func applyCrawlFile(c *CrawlConfig, fc *fileCrawlConfig) {
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if len(fc.Keywords) > 0 {
		c.Keywords = fc.Keywords
	}
	if fc.MaxPages > 0 {
		c.MaxPages = fc.MaxPages
	}
	if fc.PageDelayMS > 0 {
		c.PageDelay = time.Duration(fc.PageDelayMS) * time.Millisecond
	}
	if fc.PageJitterMS > 0 {
		c.PageJitter = time.Duration(fc.PageJitterMS) * time.Millisecond
	}
	if fc.RetryBackoffMS > 0 {
		c.RetryBackoff = time.Duration(fc.RetryBackoffMS) * time.Millisecond
	}
}

func applySearchFile(c *SearchConfig, fc *fileSearchConfig) {
	if len(fc.QueryTemplates) > 0 {
		c.QueryTemplates = fc.QueryTemplates
	}
	if fc.ResultCount > 0 {
		c.ResultCount = fc.ResultCount
	}
	if fc.Country != "" {
		c.Country = fc.Country
	}
	if fc.Locale != "" {
		c.Locale = fc.Locale
	}
	if fc.QueryDelayMS > 0 {
		c.QueryDelay = time.Duration(fc.QueryDelayMS) * time.Millisecond
	}
	if fc.CompanyDelayMS > 0 {
		c.CompanyDelay = time.Duration(fc.CompanyDelayMS) * time.Millisecond
	}
	if fc.RetryBackoffMS > 0 {
		c.RetryBackoff = time.Duration(fc.RetryBackoffMS) * time.Millisecond
	}
}

func applyEnv(cfg *Config) {
	cfg.DatabaseURL = envString("DATABASE_URL", cfg.DatabaseURL)
	cfg.SerperAPIKey = envString("SERPER_API_KEY", cfg.SerperAPIKey)
	cfg.DepartmentType = envString("INTENTPIPE_DEPARTMENT", cfg.DepartmentType)
	if proxies := envString("INTENTPIPE_PROXIES", ""); proxies != "" {
		cfg.Proxies = splitCSV(proxies)
	}
	if pages := envInt("INTENTPIPE_MAX_PAGES", 0); pages > 0 {
		cfg.Crawl.MaxPages = pages
	}
}

// RequireDatabase reports a setup failure when the database credential is
// absent.
func (c Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// RequireSerper reports a setup failure when the search API credential is
// absent.
func (c Config) RequireSerper() error {
	if strings.TrimSpace(c.SerperAPIKey) == "" {
		return fmt.Errorf("SERPER_API_KEY is required")
	}
	return nil
}

// Init writes a default config file if one doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeConfigFile(path, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, path)
	}

	return created, nil
}

func writeConfigFile(path string, cfg Config) error {
	fc := fileConfig{
		DepartmentType: cfg.DepartmentType,
		Crawl: &fileCrawlConfig{
			BaseURL:        cfg.Crawl.BaseURL,
			Keywords:       cfg.Crawl.Keywords,
			MaxPages:       cfg.Crawl.MaxPages,
			PageDelayMS:    int(cfg.Crawl.PageDelay / time.Millisecond),
			PageJitterMS:   int(cfg.Crawl.PageJitter / time.Millisecond),
			RetryBackoffMS: int(cfg.Crawl.RetryBackoff / time.Millisecond),
		},
		Search: &fileSearchConfig{
			QueryTemplates: cfg.Search.QueryTemplates,
			ResultCount:    cfg.Search.ResultCount,
			Country:        cfg.Search.Country,
			Locale:         cfg.Search.Locale,
			QueryDelayMS:   int(cfg.Search.QueryDelay / time.Millisecond),
			CompanyDelayMS: int(cfg.Search.CompanyDelay / time.Millisecond),
			RetryBackoffMS: int(cfg.Search.RetryBackoff / time.Millisecond),
		},
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
