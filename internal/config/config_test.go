package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/crawlviz/pkg/cache"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

const sampleConfig = `
[source]
kind = "http"
url = "https://crawler.internal/api"
timeout = "3s"
attempts = 5

[cache]
backend = "none"

[server]
addr = "127.0.0.1:9000"

[layout]
kind = "Circular"
ring_spacing = 80.0
edge_labels = true
`

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadFromReader() error: %v", err)
	}

	if cfg.Source.Kind != "http" || cfg.Source.URL != "https://crawler.internal/api" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Source.Timeout != 3*time.Second || cfg.Source.Attempts != 5 {
		t.Errorf("timeout/attempts = %v/%d", cfg.Source.Timeout, cfg.Source.Attempts)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unset fields should keep defaults, read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Layout.Kind != "circular" {
		t.Errorf("kind should be normalized, got %q", cfg.Layout.Kind)
	}

	opts := cfg.PipelineOptions()
	if opts.Kind != "circular" || opts.RingSpacing != 80 || !opts.EdgeLabels {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
}

func TestLoadFromReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"unknown key", "[source]\nkind = \"file\"\nbogus = 1\n", errs.ErrCodeInvalidInput},
		{"unknown source", "[source]\nkind = \"ftp\"\n", errs.ErrCodeInvalidSource},
		{"unknown cache", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromReader(strings.NewReader(tt.body))
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := LoadFromReader(strings.NewReader("not = [toml")); err == nil {
		t.Error("syntax error should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CRAWLVIZ_SOURCE_KIND":     "sqlite",
		"CRAWLVIZ_SQLITE_PATH":     "/var/lib/crawler.db",
		"CRAWLVIZ_SOURCE_TIMEOUT":  "250ms",
		"CRAWLVIZ_SOURCE_ATTEMPTS": "2",
		"CRAWLVIZ_ADDR":            ":9999",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Source.Kind != "sqlite" || cfg.Source.Path != "/var/lib/crawler.db" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Source.Timeout != 250*time.Millisecond || cfg.Source.Attempts != 2 {
		t.Errorf("timeout/attempts = %v/%d", cfg.Source.Timeout, cfg.Source.Attempts)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}

	env["CRAWLVIZ_SOURCE_TIMEOUT"] = "soon"
	if err := cfg.ApplyEnv(lookup); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("bad duration error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("CRAWLVIZ_ADDR", ":7070")

	// Missing default file is fine.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Source.Kind != "file" || cfg.Server.Addr != ":7070" {
		t.Errorf("defaults + env = %+v / %q", cfg.Source, cfg.Server.Addr)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "crawlviz", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Source.Kind != "http" {
		t.Errorf("file should be read, kind = %q", cfg.Source.Kind)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env should override the file, addr = %q", cfg.Server.Addr)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	c, err := CacheConfig{Backend: CacheNone}.OpenCache(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want NullCache", c)
	}

	dir := t.TempDir()
	c, err = CacheConfig{Backend: CacheFile}.OpenCache(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("file backend = %T", c)
	}
}

func TestKeyer(t *testing.T) {
	plain := CacheConfig{}.Keyer().GraphKey("file", "job")
	scoped := CacheConfig{Prefix: "team-a"}.Keyer().GraphKey("file", "job")
	if plain == scoped || !strings.Contains(scoped, "team-a") {
		t.Errorf("plain %q, scoped %q", plain, scoped)
	}
}
