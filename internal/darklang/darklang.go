package darklang

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/preference"
	"github.com/ferdiebergado/lmskit/internal/session"
)

// Form fields of the preview language page.
const (
	FieldPreviewLang = "preview_lang"
	FieldReset       = "reset"
	FieldSetLanguage = "set_language"
)

// Request is the part of an HTTP request that the preview language logic reads and changes.
// UserID is empty for anonymous requests.
type Request struct {
	Session *session.Session
	UserID  string
	Form    url.Values
}

func (r Request) authenticated() bool {
	return r.UserID != ""
}

type Darklang struct {
	configs     ConfigStore
	prefs       preference.Store
	defaultLang string
}

func New(configs ConfigStore, prefs preference.Store, defaultLang string) *Darklang {
	return &Darklang{configs: configs, prefs: prefs, defaultLang: defaultLang}
}

// Config returns the current configuration.
func (d *Darklang) Config(ctx context.Context) (Config, error) {
	cfg, err := d.configs.Current(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("load darklang config: %w", err)
	}
	return cfg, nil
}

// ReleasedLangs returns the released languages, always including the site default.
func (d *Darklang) ReleasedLangs(ctx context.Context) ([]string, error) {
	cfg, err := d.Config(ctx)
	if err != nil {
		return nil, err
	}
	return d.releasedLangs(cfg), nil
}

func (d *Darklang) releasedLangs(cfg Config) []string {
	langs := cfg.ReleasedLanguagesList()
	if d.defaultLang != "" && !slices.Contains(langs, d.defaultLang) {
		langs = append(langs, d.defaultLang)
	}
	return langs
}

// ProcessRequest applies a preview page submission. It returns the message
// to show the user, or "" when the feature is disabled or nothing was submitted.
func (d *Darklang) ProcessRequest(ctx context.Context, req Request) (string, error) {
	cfg, err := d.Config(ctx)
	if err != nil {
		return "", err
	}

	if !cfg.Enabled {
		return "", nil
	}

	if req.Form.Has(FieldReset) {
		pref, err := d.ClearPreviewLanguage(ctx, req)
		if err != nil {
			return "", err
		}
		if pref == "" {
			return message.LanguageReset, nil
		}
		return fmt.Sprintf(message.LanguageResetF, pref), nil
	}

	if req.Form.Has(FieldSetLanguage) {
		return d.SetPreviewLanguage(ctx, req)
	}

	return "", nil
}

// SetPreviewLanguage stores the submitted preview language in the session and,
// for signed-in users, as their dark language preference.
func (d *Darklang) SetPreviewLanguage(ctx context.Context, req Request) (string, error) {
	cfg, err := d.Config(ctx)
	if err != nil {
		return "", err
	}

	if !cfg.Enabled {
		return "", nil
	}

	previewLang := req.Form.Get(FieldPreviewLang)
	if previewLang == "" {
		return "", nil
	}

	req.Session.Set(session.KeyLanguage, previewLang)

	// Persisting the preview keeps the user's general language preference from replacing it.
	if req.authenticated() {
		if err := d.prefs.Set(ctx, req.UserID, preference.KeyDarkLang, previewLang); err != nil {
			return "", fmt.Errorf("save preview language: %w", err)
		}
	}

	return fmt.Sprintf(message.LanguageSetFmt, previewLang), nil
}

// ClearPreviewLanguage removes the preview language and restores the user's
// preferred language, which it returns ("" when there is none).
func (d *Darklang) ClearPreviewLanguage(ctx context.Context, req Request) (string, error) {
	req.Session.Delete(session.KeyLanguage)

	if !req.authenticated() {
		return "", nil
	}

	if err := d.prefs.Delete(ctx, req.UserID, preference.KeyDarkLang); err != nil {
		return "", fmt.Errorf("delete preview language: %w", err)
	}

	pref, err := d.prefs.Get(ctx, req.UserID, preference.KeyPrefLang)
	if err != nil {
		if errors.Is(err, preference.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get preferred language: %w", err)
	}

	if pref != "" {
		req.Session.Set(session.KeyLanguage, pref)
	}
	return pref, nil
}

// previewLanguage returns the stored preview language of the user, or "".
func (d *Darklang) previewLanguage(ctx context.Context, userID string) (string, error) {
	lang, err := d.prefs.Get(ctx, userID, preference.KeyDarkLang)
	if err != nil {
		if errors.Is(err, preference.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get preview language: %w", err)
	}
	return lang, nil
}

// SaveConfig appends a configuration row changed by changedBy and makes it current.
func (d *Darklang) SaveConfig(ctx context.Context, params SaveConfigParams, changedBy string) (Config, error) {
	cfg, err := d.configs.Save(ctx, Config{
		Enabled:           params.Enabled,
		ReleasedLanguages: params.ReleasedLanguages,
		ChangedBy:         changedBy,
	})
	if err != nil {
		return Config{}, fmt.Errorf("save darklang config: %w", err)
	}
	return cfg, nil
}
