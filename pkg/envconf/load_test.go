package envconf

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

type nested struct {
	Host string `env:"TEST_HOST"`
	Port uint16 `env:"TEST_PORT" envDefault:"8080"`
}

type testConf struct {
	Name     string        `env:"TEST_NAME"`
	Level    slog.Level    `env:"TEST_LEVEL" envDefault:"info"`
	Timeout  time.Duration `env:"TEST_TIMEOUT" envDefault:"15s"`
	Verbose  bool          `env:"TEST_VERBOSE" envDefault:"false"`
	Nested   nested
	Ignored  string `env:"-"`
	internal string //nolint:unused
}

func TestLoad_FullStruct(t *testing.T) {
	t.Setenv("TEST_NAME", "matchbook")
	t.Setenv("TEST_HOST", "localhost")
	t.Setenv("TEST_LEVEL", "debug")
	t.Setenv("TEST_TIMEOUT", "250ms")

	cfg := new(testConf)

	err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Name != "matchbook" {
		t.Errorf("Name: want matchbook, got %q", cfg.Name)
	}
	if cfg.Level != slog.LevelDebug {
		t.Errorf("Level: want debug, got %v", cfg.Level)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("Timeout: want 250ms, got %v", cfg.Timeout)
	}
	if cfg.Nested.Host != "localhost" {
		t.Errorf("Nested.Host: want localhost, got %q", cfg.Nested.Host)
	}
	if cfg.Nested.Port != 8080 {
		t.Errorf("Nested.Port default: want 8080, got %d", cfg.Nested.Port)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("TEST_HOST", "localhost")
	// TEST_NAME deliberately unset

	err := Load(new(testConf))
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("want ErrMissingRequired, got %v", err)
	}
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("TEST_NAME", "x")
	t.Setenv("TEST_HOST", "localhost")
	t.Setenv("TEST_PORT", "not-a-port")

	err := Load(new(testConf))
	if err == nil {
		t.Fatal("want parse error, got nil")
	}
}

func TestLoad_NotAStructPointer(t *testing.T) {
	var s string

	if err := Load(&s); err == nil {
		t.Fatal("want error for non-struct destination")
	}
	if err := Load(nil); err == nil {
		t.Fatal("want error for nil destination")
	}
}
