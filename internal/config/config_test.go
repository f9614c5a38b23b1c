package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DepartmentType != "it" {
		t.Fatalf("DepartmentType = %q, want it", cfg.DepartmentType)
	}
	if len(cfg.Crawl.Keywords) == 0 {
		t.Fatalf("default crawl keywords must not be empty")
	}
	if cfg.Crawl.MaxPages != 10 {
		t.Fatalf("MaxPages = %d, want 10", cfg.Crawl.MaxPages)
	}
	if len(cfg.Search.QueryTemplates) != 2 {
		t.Fatalf("QueryTemplates = %d, want 2", len(cfg.Search.QueryTemplates))
	}
}

func TestApplyFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	body := `{
		// comments are allowed
		department_type: "sales",
		crawl: {max_pages: 3, page_delay_ms: 1500},
		search: {result_count: 20},
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := DefaultConfig()
	if err := applyFile(&cfg, path); err != nil {
		t.Fatalf("applyFile: %v", err)
	}

	if cfg.DepartmentType != "sales" {
		t.Fatalf("DepartmentType = %q, want sales", cfg.DepartmentType)
	}
	if cfg.Crawl.MaxPages != 3 {
		t.Fatalf("MaxPages = %d, want 3", cfg.Crawl.MaxPages)
	}
	if cfg.Crawl.PageDelay != 1500*time.Millisecond {
		t.Fatalf("PageDelay = %v, want 1.5s", cfg.Crawl.PageDelay)
	}
	if cfg.Search.ResultCount != 20 {
		t.Fatalf("ResultCount = %d, want 20", cfg.Search.ResultCount)
	}
	// Untouched fields keep their defaults.
	if len(cfg.Crawl.Keywords) == 0 || cfg.Search.QueryDelay != time.Second {
		t.Fatalf("unrelated defaults were clobbered: %+v", cfg)
	}
}

func TestApplyFileMissingIsFine(t *testing.T) {
	cfg := DefaultConfig()
	if err := applyFile(&cfg, filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("SERPER_API_KEY", "key-from-env")
	t.Setenv("INTENTPIPE_DEPARTMENT", "hr")
	t.Setenv("INTENTPIPE_MAX_PAGES", "4")
	t.Setenv("INTENTPIPE_PROXIES", "http://p1:8080, http://p2:8080")

	cfg := DefaultConfig()
	applyEnv(&cfg)

	if cfg.DatabaseURL != "postgres://env" {
		t.Fatalf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SerperAPIKey != "key-from-env" {
		t.Fatalf("SerperAPIKey = %q", cfg.SerperAPIKey)
	}
	if cfg.DepartmentType != "hr" {
		t.Fatalf("DepartmentType = %q", cfg.DepartmentType)
	}
	if cfg.Crawl.MaxPages != 4 {
		t.Fatalf("MaxPages = %d", cfg.Crawl.MaxPages)
	}
	if len(cfg.Proxies) != 2 || cfg.Proxies[1] != "http://p2:8080" {
		t.Fatalf("Proxies = %v", cfg.Proxies)
	}
}

func TestRequireCredentials(t *testing.T) {
	var cfg Config
	if err := cfg.RequireDatabase(); err == nil {
		t.Fatalf("expected error for missing DATABASE_URL")
	}
	if err := cfg.RequireSerper(); err == nil {
		t.Fatalf("expected error for missing SERPER_API_KEY")
	}

	cfg.DatabaseURL = "postgres://x"
	cfg.SerperAPIKey = "k"
	if err := cfg.RequireDatabase(); err != nil {
		t.Fatalf("RequireDatabase: %v", err)
	}
	if err := cfg.RequireSerper(); err != nil {
		t.Fatalf("RequireSerper: %v", err)
	}
}
