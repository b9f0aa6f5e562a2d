// Package config loads crawlviz settings from a TOML file and the
// environment.
//
// Precedence, lowest first: [Default], the config file, CRAWLVIZ_*
// environment variables, then command-line flags (applied by the caller).
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/crawlviz/pkg/cache"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/layout"
	"github.com/matzehuels/crawlviz/pkg/pipeline"
	"github.com/matzehuels/crawlviz/pkg/source"
)

const (
	appName  = "crawlviz"
	fileName = "config.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CRAWLVIZ_"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete crawlviz configuration.
type Config struct {
	Source source.Config `toml:"source"`
	Cache  CacheConfig   `toml:"cache"`
	Server ServerConfig  `toml:"server"`
	Layout LayoutConfig  `toml:"layout"`
}

// CacheConfig selects where pipeline results are memoized.
type CacheConfig struct {
	Backend  string `toml:"backend"`   // file, redis or none
	Dir      string `toml:"dir"`       // file backend; empty means the XDG cache dir
	RedisURL string `toml:"redis_url"` // redis backend
	Prefix   string `toml:"prefix"`    // optional key namespace
}

// ServerConfig configures `crawlviz serve`.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// LayoutConfig holds the default layout and drawing settings.
type LayoutConfig struct {
	Kind              string  `toml:"kind"`
	HorizontalSpacing float64 `toml:"hspace"`
	VerticalSpacing   float64 `toml:"vspace"`
	BaseRadius        float64 `toml:"base_radius"`
	DepthIncrement    float64 `toml:"depth_increment"`
	RingSpacing       float64 `toml:"ring_spacing"`
	CellSize          float64 `toml:"cell_size"`
	EdgeLabels        bool    `toml:"edge_labels"`
	Detailed          bool    `toml:"detailed"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Source: source.Config{Kind: source.KindFile, Dir: "."},
		Cache:  CacheConfig{Backend: CacheFile},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Layout: LayoutConfig{Kind: string(layout.DefaultKind)},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/crawlviz/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load builds the configuration from path and the process environment.
//
// An empty path means [DefaultPath]; a missing default file is not an
// error. An explicit path that does not exist is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return finish(Default(), os.LookupEnv)
		}
		path = p
	}

	fh, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return finish(Default(), os.LookupEnv)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer fh.Close()

	cfg := Default()
	if err := decode(fh, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return finish(cfg, os.LookupEnv)
}

// LoadFromReader decodes configuration from r without consulting the
// environment.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decode(r, &cfg); err != nil {
		return nil, err
	}
	return finish(cfg, func(string) (string, bool) { return "", false })
}

func finish(cfg Config, lookup func(string) (string, bool)) (*Config, error) {
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errs.New(errs.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides fields from CRAWLVIZ_* variables returned by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SOURCE_KIND":      &c.Source.Kind,
		"SOURCE_DIR":       &c.Source.Dir,
		"SOURCE_URL":       &c.Source.URL,
		"SOURCE_TOKEN":     &c.Source.Token,
		"SQLITE_PATH":      &c.Source.Path,
		"MONGO_URI":        &c.Source.MongoURI,
		"MONGO_DATABASE":   &c.Source.Database,
		"MONGO_COLLECTION": &c.Source.Collection,
		"CACHE_BACKEND":    &c.Cache.Backend,
		"CACHE_DIR":        &c.Cache.Dir,
		"REDIS_URL":        &c.Cache.RedisURL,
		"ADDR":             &c.Server.Addr,
		"LAYOUT_KIND":      &c.Layout.Kind,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "SOURCE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "%sSOURCE_TIMEOUT", EnvPrefix)
		}
		c.Source.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "SOURCE_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "%sSOURCE_ATTEMPTS", EnvPrefix)
		}
		c.Source.Attempts = n
	}
	return nil
}

func (c *Config) normalise() {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheFile
	}
	c.Layout.Kind = strings.ToLower(strings.TrimSpace(c.Layout.Kind))
}

// Validate rejects settings that cannot work. Unknown layout kinds are
// accepted: the pipeline falls back to grid for them.
func (c Config) Validate() error {
	if c.Source.Kind != "" && !isSourceKind(c.Source.Kind) {
		return errs.New(errs.ErrCodeInvalidSource, "unknown source kind %q (must be one of: %s)",
			c.Source.Kind, strings.Join(source.Kinds(), ", "))
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errs.New(errs.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Source.Attempts < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "source.attempts must be >= 0")
	}
	return nil
}

func isSourceKind(kind string) bool {
	for _, k := range source.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// OpenCache opens the configured cache backend. defaultDir is used by the
// file backend when Dir is empty.
func (c CacheConfig) OpenCache(ctx context.Context, defaultDir string) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: c.RedisURL})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Dir
	if dir == "" {
		dir = defaultDir
	}
	if dir == "" {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Keyer returns the cache keyer, scoped when a prefix is configured.
func (c CacheConfig) Keyer() cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if c.Prefix == "" {
		return keyer
	}
	return cache.NewScopedKeyer(keyer, c.Prefix)
}

// PipelineOptions returns pipeline options seeded with the layout defaults.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Kind:              c.Layout.Kind,
		HorizontalSpacing: c.Layout.HorizontalSpacing,
		VerticalSpacing:   c.Layout.VerticalSpacing,
		BaseRadius:        c.Layout.BaseRadius,
		DepthIncrement:    c.Layout.DepthIncrement,
		RingSpacing:       c.Layout.RingSpacing,
		CellSize:          c.Layout.CellSize,
		EdgeLabels:        c.Layout.EdgeLabels,
		Detailed:          c.Layout.Detailed,
	}
}
