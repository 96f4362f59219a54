package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fluxkit/version"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server        struct {
		Port        int           `mapstructure:"port"`
		ReadTimeout time.Duration `mapstructure:"read_timeout"`
	} `mapstructure:"server"`
	Store struct {
		Driver string `mapstructure:"driver"`
	} `mapstructure:"store"`
}

func (c *testConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}
}

func (c *testConfig) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("server.port must be positive")
	}
	return c.ServiceConfig.Validate()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad_FileDefaultsAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: moviesinfo
server:
  port: 8080
  read_timeout: 5s
`)
	t.Setenv("TESTSVC_SERVER_PORT", "9090")
	t.Setenv("TESTSVC_STORE_DRIVER", "redis")

	cfg, err := Load[testConfig]("moviesinfo", WithConfigFile(path), WithEnvFile(""), WithEnvPrefix("TESTSVC"),
		WithFileSystem(stubFS{existing: map[string]bool{path: true}}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "moviesinfo" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Driver != "redis" {
		t.Errorf("store.driver = %q", cfg.Store.Driver)
	}
	if cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("expected development defaults, got %q debug=%v", cfg.Environment, cfg.Debug)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: moviesinfo\n")

	_, err := Load[testConfig]("moviesinfo", WithConfigFile(path), WithEnvPrefix("NOPE_NOT_SET"),
		WithFileSystem(stubFS{existing: map[string]bool{path: true}}))
	if err == nil || !strings.Contains(err.Error(), "server.port") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load[testConfig]("moviesinfo", WithConfigFile(filepath.Join(t.TempDir(), "missing.yml")), WithEnvPrefix("NOPE_NOT_SET"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

type stubFS struct {
	existing map[string]bool
	loaded   *[]string
}

func (s stubFS) Exists(path string) bool { return s.existing[path] }

func (s stubFS) LoadEnv(path string) error {
	if s.loaded != nil {
		*s.loaded = append(*s.loaded, path)
	}
	return nil
}

func TestResolver_ResolveFiles(t *testing.T) {
	fs := stubFS{existing: map[string]bool{
		"./cmd/moviesinfo/config.yml": true,
		"./config.yml":                true,
		"./config/.env":               true,
	}}
	r := &Resolver{FileSystem: fs}

	got := r.ResolveFiles("moviesinfo", LoaderConfig{})
	if got.ConfigFile != "./cmd/moviesinfo/config.yml" {
		t.Errorf("config file = %q", got.ConfigFile)
	}
	if got.EnvFile != "./config/.env" {
		t.Errorf("env file = %q", got.EnvFile)
	}

	explicit := r.ResolveFiles("moviesinfo", LoaderConfig{ConfigFile: "x.yml", EnvFile: "y.env"})
	if explicit.ConfigFile != "x.yml" || explicit.EnvFile != "y.env" {
		t.Errorf("explicit paths not kept: %+v", explicit)
	}

	none := (&Resolver{FileSystem: stubFS{}}).ResolveFiles("moviesinfo", LoaderConfig{})
	if none.ConfigFile != "" || none.EnvFile != "" {
		t.Errorf("expected no files, got %+v", none)
	}
}

func TestKeyVariants(t *testing.T) {
	got := keyVariants("SERVER_READ_TIMEOUT")
	for _, want := range []string{"server_read_timeout", "server.read_timeout", "server_read.timeout", "server.read.timeout"} {
		if !slices.Contains(got, want) {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
	if len(got) != 4 {
		t.Errorf("expected 4 variants, got %d", len(got))
	}
	if got := keyVariants("PORT"); len(got) != 1 || got[0] != "port" {
		t.Errorf("single part = %v", got)
	}
	if got := keyVariants("A_B_C_D_E_F_G"); len(got) != 2 {
		t.Errorf("long keys should only get two variants, got %d", len(got))
	}
}

func TestServiceConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc"}, ""},
		{"production", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{}, "config.name is required"},
		{"bad environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ApplyDefaults()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	prod := ServiceConfig{Name: "svc", Environment: "production"}
	prod.ApplyDefaults()
	if prod.Debug {
		t.Error("production must not enable debug")
	}
	if prod.Version != version.Get().Short() {
		t.Errorf("version = %q, want build version", prod.Version)
	}

	pinned := ServiceConfig{Name: "svc", Version: "2.0.0"}
	pinned.ApplyDefaults()
	if pinned.Version != "2.0.0" {
		t.Errorf("configured version overwritten: %q", pinned.Version)
	}
}
