package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	tests := []struct {
		name string
		loc  string
		want string
	}{
		{"unset", "", filepath.Join(xdg, appName)},
		{"file", "file", filepath.Join(xdg, appName)},
		{"directory", "/srv/circuitgen-cache", "/srv/circuitgen-cache"},
		{"redis", "redis://localhost:6379/0", "redis://localhost:6379/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envCache, tt.loc)
			out, err := execute(t, "cache", "path")
			if err != nil {
				t.Fatalf("cache path: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("cache path = %q, want %q", got, tt.want)
			}
		})
	}
}
