package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/pkg/security"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
)

// Middleware attaches the session named by the session cookie to the request context.
// A modified session is saved before the response header is written.
func Middleware(store Store, opts *config.SessionOptions, randomizer security.Randomizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := load(r, store, opts, randomizer)
			if err != nil {
				web.RespondInternalServerError(w, err)
				return
			}

			sw := &sessionWriter{ResponseWriter: w}
			sw.commit = func() {
				save(r.Context(), w, store, opts, sess)
			}

			next.ServeHTTP(sw, r.WithContext(NewContextWithSession(r.Context(), sess)))
			sw.commitOnce()
		})
	}
}

func load(r *http.Request, store Store, opts *config.SessionOptions, randomizer security.Randomizer) (*Session, error) {
	if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
		sess, err := store.Load(r.Context(), cookie.Value)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, ErrNotFound) {
			slog.Error("failed to load session", "reason", err)
		}
	}

	id, err := randomizer.Token(opts.IDLength)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	return New(id), nil
}

func save(ctx context.Context, w http.ResponseWriter, store Store, opts *config.SessionOptions, sess *Session) {
	if !sess.Dirty() {
		return
	}

	isNew := sess.IsNew()
	if err := store.Save(ctx, sess, opts.MaxAge.Duration); err != nil {
		slog.Error("failed to save session", "reason", err)
		return
	}

	if isNew {
		http.SetCookie(w, security.HardenedCookie(opts.CookieName, sess.ID, opts.MaxAge.Duration))
	}
}

// sessionWriter saves the session right before the first header or body write.
type sessionWriter struct {
	http.ResponseWriter
	once   sync.Once
	commit func()
}

func (w *sessionWriter) commitOnce() {
	w.once.Do(w.commit)
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.commitOnce()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commitOnce()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
