package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr string
	}{
		{"http", "http://localhost:8000", ""},
		{"https", "https://analysis.internal", ""},
		{"relative", "localhost:8000", "remote.base_url"},
		{"ftp", "ftp://files.example.com", "scheme must be http or https"},
		{"no host", "http://", "remote.base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Remote: RemoteConfig{BaseURL: tt.baseURL}}
			cfg.ApplyDefaults()

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Logging: LoggingConfig{Level: "verbose"}}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
	expected := `logging.level must be debug, info, warn or error, got "verbose"`
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
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Remote.BaseURL != "http://localhost:8000" {
		t.Errorf("expected BaseURL=http://localhost:8000, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.Timeout() != 30*time.Second {
		t.Errorf("expected remote timeout 30s, got %v", cfg.Remote.Timeout())
	}
	if cfg.Annotation.Quiet() != 800*time.Millisecond {
		t.Errorf("expected quiet period 800ms, got %v", cfg.Annotation.Quiet())
	}
	if cfg.Sessions.MaxSessions != 1000 {
		t.Errorf("expected MaxSessions=1000, got %d", cfg.Sessions.MaxSessions)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 90, ShutdownSec: 5},
		Remote:     RemoteConfig{BaseURL: "https://nlp.example.com", TimeoutSec: 5},
		Annotation: AnnotationConfig{DebounceMS: 300},
		Sessions:   SessionsConfig{MaxSessions: 10},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 90 {
		t.Errorf("expected WriteTimeoutSec=90, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Remote.BaseURL != "https://nlp.example.com" {
		t.Errorf("expected custom BaseURL, got %q", cfg.Remote.BaseURL)
	}
	if cfg.Annotation.DebounceMS != 300 {
		t.Errorf("expected DebounceMS=300, got %d", cfg.Annotation.DebounceMS)
	}
	if cfg.Sessions.MaxSessions != 10 {
		t.Errorf("expected MaxSessions=10, got %d", cfg.Sessions.MaxSessions)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("ASPECTMIND_TEST_REMOTE", "http://nlp:9000")

	cfg, err := Parse([]byte(`
http:
  port: 8081
remote:
  base_url: ${ASPECTMIND_TEST_REMOTE}
  timeout_sec: ${ASPECTMIND_TEST_TIMEOUT:-7}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.BaseURL != "http://nlp:9000" {
		t.Errorf("BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.TimeoutSec != 7 {
		t.Errorf("TimeoutSec = %d, want the inline default 7", cfg.Remote.TimeoutSec)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("Port = %d", cfg.HTTP.Port)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 70000\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_Local(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port == 0 {
		t.Error("expected a port from config/local.yaml")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
