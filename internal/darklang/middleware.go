package darklang

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/lmskit/internal/auth"
	"github.com/ferdiebergado/lmskit/internal/session"
)

// Middleware removes unreleased languages from Accept-Language and applies the
// signed-in user's preview language to the session. It must run after the
// session and authentication middlewares.
func Middleware(d *Darklang) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cfg, err := d.Config(ctx)
			if err != nil {
				slog.Error("darklang middleware skipped", "reason", err)
				next.ServeHTTP(w, r)
				return
			}

			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			cleanAcceptHeader(r.Header, d.releasedLangs(cfg))

			if u, err := auth.UserFromContext(ctx); err == nil {
				if sess := session.FromContext(ctx); sess != nil {
					lang, err := d.previewLanguage(ctx, u.ID)
					if err != nil {
						slog.Error("failed to apply preview language", "reason", err, "user_id", u.ID)
					} else if lang != "" {
						sess.Set(session.KeyLanguage, lang)
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// cleanAcceptHeader rewrites Accept-Language in place. Repeated header lines
// are read as one comma separated list. An absent header and the "*" wildcard
// are left alone.
func cleanAcceptHeader(h http.Header, released []string) {
	values := h.Values(HeaderAcceptLanguage)
	if len(values) == 0 {
		return
	}

	accept := strings.Join(values, ", ")
	if accept == "*" {
		return
	}

	h.Set(HeaderAcceptLanguage, CleanAcceptLanguage(accept, released))
}
