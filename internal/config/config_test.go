package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ferdiebergado/lmskit/internal/config"
)

const sampleConfig = `{
  "server": {"port": 8080, "read_timeout": "5s"},
  "lms": {"root_url": "https://lms.example.com", "base": "lms.example.com"},
  "features": {"enable_mktg_site": true},
  "marketing": {"urls": {"ROOT": "https://www.example.com"}},
  "darklang": {"cache_ttl": "30s"}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("PORT", "9090")
	t.Setenv("LMS_BASE", "localhost:8000")

	opts, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) = %v", path, err)
	}

	if got, want := opts.Server.Port, 9090; got != want {
		t.Errorf("opts.Server.Port = %d, want: %d", got, want)
	}

	if got, want := opts.Server.ReadTimeout.Duration, 5*time.Second; got != want {
		t.Errorf("opts.Server.ReadTimeout = %v, want: %v", got, want)
	}

	if got, want := opts.LMS.Base, "localhost:8000"; got != want {
		t.Errorf("opts.LMS.Base = %q, want: %q", got, want)
	}

	if got, want := opts.LMS.LanguageCode, "en"; got != want {
		t.Errorf("opts.LMS.LanguageCode = %q, want: %q", got, want)
	}

	if !opts.MarketingSiteEnabled() {
		t.Error("opts.MarketingSiteEnabled() = false, want: true")
	}

	if got, want := opts.Marketing.URLs[config.MarketingRootKey], "https://www.example.com"; got != want {
		t.Errorf("opts.Marketing.URLs[ROOT] = %q, want: %q", got, want)
	}

	if got, want := opts.DarkLang.CacheTTL.Duration, 30*time.Second; got != want {
		t.Errorf("opts.DarkLang.CacheTTL = %v, want: %v", got, want)
	}
}

func TestLoad_MarketingSectionAbsent(t *testing.T) {
	path := writeConfig(t, `{"lms": {"root_url": "https://lms.example.com"}}`)

	opts, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) = %v", path, err)
	}

	if opts.Marketing != nil && opts.Marketing.URLs != nil {
		t.Errorf("opts.Marketing.URLs = %v, want: nil", opts.Marketing.URLs)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		envPort string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, ""},
		{"malformed json", func(t *testing.T) string { return writeConfig(t, `{"server":`) }, ""},
		{"bad env override", func(t *testing.T) string { return writeConfig(t, `{}`) }, "eighty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envPort != "" {
				t.Setenv("PORT", tt.envPort)
			}

			path := tt.path(t)
			if _, err := config.Load(path); err == nil {
				t.Errorf("config.Load(%q) = nil, want: error", path)
			}
		})
	}
}
