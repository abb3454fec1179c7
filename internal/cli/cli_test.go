package cli

import (
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	want := filepath.Join("/tmp/xdg-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/tmp/fake-home")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	want := filepath.Join("/tmp/fake-home", ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Empty", "", []string{"svg"}},
		{"Single", "json", []string{"json"}},
		{"Multiple", "svg,png,pdf", []string{"svg", "png", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"NoOutput", "", "model.json", "model"},
		{"OutputWithFormatExt", "out.svg", "model.json", "out"},
		{"OutputWithOtherExt", "out.layout", "model.json", "out.layout"},
		{"OutputPlain", "diagrams/map", "model.json", "diagrams/map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := map[string]bool{
		"layout":     false,
		"render":     false,
		"visualize":  false,
		"pick":       false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("logger level = %v, want debug", c.Logger.GetLevel())
	}
}
