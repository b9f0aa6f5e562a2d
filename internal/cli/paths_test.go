package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", "crawlviz")},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", "crawlviz")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatal(err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestLocalCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache")
	c := New(io.Discard, log.InfoLevel)

	if dir, _ := c.localCacheDir(); dir != filepath.Join("/var/cache", "crawlviz") {
		t.Errorf("localCacheDir() = %q, want the XDG default", dir)
	}

	c.Config.Cache.Dir = "/srv/crawlviz-cache"
	if dir, _ := c.localCacheDir(); dir != "/srv/crawlviz-cache" {
		t.Errorf("localCacheDir() = %q, want the configured dir", dir)
	}
}
