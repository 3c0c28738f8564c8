package middleware_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/ferdiebergado/lmskit/internal/middleware"
	"github.com/ferdiebergado/lmskit/internal/pkg/security"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
)

func TestCSRFGuard(t *testing.T) {
	t.Parallel()

	opts := &config.CSRFOptions{CookieName: "csrftoken", FieldName: "csrf_token", TokenLength: 10}
	fixed := security.Randomizer(func(_ uint32) ([]byte, error) { return []byte("test_token"), nil })
	wantToken := base64.RawURLEncoding.EncodeToString([]byte("test_token"))

	const headerSeen = "X-Seen-Token"
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerSeen, web.CSRFTokenFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	formReq := func(cookie, field string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"csrf_token": {field}}.Encode()))
		req.Header.Set(web.HeaderContentType, web.MimeForm)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: opts.CookieName, Value: cookie})
		}
		return req
	}

	tests := []struct {
		name       string
		req        func() *http.Request
		randomizer security.Randomizer
		code       int
		seen       string
		setCookie  bool
	}{
		{
			"get without cookie sets one",
			func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", http.NoBody) },
			fixed, http.StatusOK, wantToken, true,
		},
		{
			"get with cookie keeps it",
			func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
				req.AddCookie(&http.Cookie{Name: opts.CookieName, Value: "existing"})
				return req
			},
			fixed, http.StatusOK, "existing", false,
		},
		{
			"get with failing randomizer",
			func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", http.NoBody) },
			func(_ uint32) ([]byte, error) { return nil, errors.New("entropy exhausted") },
			http.StatusInternalServerError, "", false,
		},
		{
			"post with matching form field",
			func() *http.Request { return formReq("tok", "tok") },
			fixed, http.StatusOK, "tok", false,
		},
		{
			"post with matching header",
			func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
				req.AddCookie(&http.Cookie{Name: opts.CookieName, Value: "tok"})
				req.Header.Set(middleware.HeaderCSRF, "tok")
				return req
			},
			fixed, http.StatusOK, "tok", false,
		},
		{
			"post with mismatched field",
			func() *http.Request { return formReq("tok", "other") },
			fixed, http.StatusForbidden, "", false,
		},
		{
			"post without cookie",
			func() *http.Request { return formReq("", "tok") },
			fixed, http.StatusForbidden, "", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			middleware.CSRFGuard(opts, tt.randomizer)(handler).ServeHTTP(rec, tt.req())

			if gotCode, wantCode := rec.Code, tt.code; gotCode != wantCode {
				t.Errorf("rec.Code = %d, want: %d", gotCode, wantCode)
			}

			if got, want := rec.Header().Get(headerSeen), tt.seen; got != want {
				t.Errorf("token in context = %q, want: %q", got, want)
			}

			resp := rec.Result()
			defer resp.Body.Close()

			var csrfCookie *http.Cookie
			for _, c := range resp.Cookies() {
				if c.Name == opts.CookieName {
					csrfCookie = c
				}
			}

			if tt.setCookie {
				if csrfCookie == nil {
					t.Fatal("csrf cookie was not set")
				}
				if csrfCookie.Value != wantToken {
					t.Errorf("cookie = %q, want: %q", csrfCookie.Value, wantToken)
				}
				if csrfCookie.HttpOnly {
					t.Error("csrfCookie.HttpOnly = true, want: false")
				}
			} else if csrfCookie != nil {
				t.Errorf("unexpected csrf cookie %q", csrfCookie.Value)
			}
		})
	}
}
