package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Backend: BackendConfig{
			Addresses: []string{"http://localhost:9200"},
			Index:     "ep-site",
		},
		Template: TemplateConfig{
			Driver: "file",
			Path:   "template.json",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingBackendAddresses(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Addresses = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing backend addresses")
	}
}

func TestValidate_MissingIndex(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Index = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing index")
	}
}

func TestValidate_TemplateDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Template = TemplateConfig{Driver: "file"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for file driver without path")
	}

	cfg.Template = TemplateConfig{Driver: "redis"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for redis driver without addrs")
	}

	cfg.Template = TemplateConfig{Driver: "redis", Addrs: []string{"localhost:6379"}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for redis driver with addrs: %v", err)
	}

	cfg.Template = TemplateConfig{Driver: "memcached"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `template.driver must be "file" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Backend.TimeoutSec != 10 {
		t.Errorf("expected TimeoutSec=10, got %d", cfg.Backend.TimeoutSec)
	}
	if cfg.Template.Driver != "file" {
		t.Errorf("expected Driver=file, got %q", cfg.Template.Driver)
	}
	if cfg.Template.Key != "ep:search_template" {
		t.Errorf("expected default template key, got %q", cfg.Template.Key)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Backend:  BackendConfig{TimeoutSec: 3},
		Template: TemplateConfig{Driver: "redis", Key: "custom:key"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Backend.TimeoutSec != 3 {
		t.Errorf("expected TimeoutSec=3, got %d", cfg.Backend.TimeoutSec)
	}
	if cfg.Template.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Template.Driver)
	}
	if cfg.Template.Key != "custom:key" {
		t.Errorf("expected Key='custom:key', got %q", cfg.Template.Key)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("EP_TEST_PASSWORD", "s3cret")
	os.Unsetenv("EP_TEST_UNSET")

	in := []byte("password: ${EP_TEST_PASSWORD}\nindex: ${EP_TEST_UNSET:-ep-site}\n")
	out := string(expandEnvVars(in))

	want := "password: s3cret\nindex: ep-site\n"
	if out != want {
		t.Errorf("expanded:\ngot:  %q\nwant: %q", out, want)
	}
}
