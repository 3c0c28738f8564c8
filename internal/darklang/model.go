// Package darklang keeps unreleased UI languages out of browser
// negotiation while letting signed-in users preview them.
package darklang

import (
	"strings"
	"time"
)

// Config is one row of the admin-edited dark language configuration.
// The most recently changed row is the current one.
type Config struct {
	ID                int64     `db:"id" json:"id"`
	Enabled           bool      `db:"enabled" json:"enabled"`
	ReleasedLanguages string    `db:"released_languages" json:"released_languages"`
	ChangedBy         string    `db:"changed_by" json:"changed_by"`
	ChangeDate        time.Time `db:"change_date" json:"change_date"`
}

// ReleasedLanguagesList returns the lowercased released language codes in configured order.
func (c Config) ReleasedLanguagesList() []string {
	if strings.TrimSpace(c.ReleasedLanguages) == "" {
		return nil
	}

	var langs []string
	for _, lang := range strings.Split(c.ReleasedLanguages, ",") {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

// SaveConfigParams is the admin payload for a new configuration row.
type SaveConfigParams struct {
	Enabled           bool   `json:"enabled"`
	ReleasedLanguages string `json:"released_languages" validate:"omitempty,max=1024,langlist"`
}
