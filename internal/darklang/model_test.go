package darklang_test

import (
	"testing"

	"github.com/ferdiebergado/lmskit/internal/darklang"
	"github.com/google/go-cmp/cmp"
)

func TestConfig_ReleasedLanguagesList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		released string
		want     []string
	}{
		{"empty", "", nil},
		{"blank", "  ", nil},
		{"single", "rel", []string{"rel"}},
		{"trims and lowercases", " es-419, EN ,zh-CN", []string{"es-419", "en", "zh-cn"}},
		{"drops empty items", "rel,,unrel,", []string{"rel", "unrel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := darklang.Config{ReleasedLanguages: tt.released}
			if diff := cmp.Diff(tt.want, cfg.ReleasedLanguagesList()); diff != "" {
				t.Errorf("cfg.ReleasedLanguagesList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
