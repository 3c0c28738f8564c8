package middleware

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/pkg/security"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
)

const HeaderCSRF = "X-CSRF-Token"

var (
	ErrCSRFMissing  = errors.New("csrf cookie missing")
	ErrCSRFMismatch = errors.New("csrf token mismatch")
)

// CSRFGuard implements the double submit cookie pattern. Safe methods get a
// token cookie when they have none; unsafe methods must echo the cookie in the
// form field or the X-CSRF-Token header. The token of the request is stored in
// the context for forms to render.
func CSRFGuard(opts *config.CSRFOptions, randomizer security.Randomizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookieToken string
			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				cookieToken = cookie.Value
			}

			if isSafeMethod(r.Method) {
				if cookieToken == "" {
					token, err := randomizer.Token(opts.TokenLength)
					if err != nil {
						web.RespondInternalServerError(w, err)
						return
					}

					cookie := security.HardenedCookie(opts.CookieName, token, opts.MaxAge.Duration)
					// Scripts posting JSON read the cookie to fill the header.
					cookie.HttpOnly = false
					http.SetCookie(w, cookie)
					cookieToken = token
				}

				next.ServeHTTP(w, r.WithContext(web.NewContextWithCSRFToken(r.Context(), cookieToken)))
				return
			}

			if cookieToken == "" {
				web.RespondForbidden(w, ErrCSRFMissing, message.CSRFFailed, nil)
				return
			}

			sent := r.Header.Get(HeaderCSRF)
			if sent == "" {
				if err := r.ParseForm(); err != nil {
					web.RespondBadRequest(w, err, message.InvalidInput, nil)
					return
				}
				sent = r.PostFormValue(opts.FieldName)
			}

			if !security.TokensEqual(cookieToken, sent) {
				web.RespondForbidden(w, ErrCSRFMismatch, message.CSRFFailed, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(web.NewContextWithCSRFToken(r.Context(), cookieToken)))
		})
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
