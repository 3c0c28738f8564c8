package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
	"github.com/ferdiebergado/lmskit/internal/platform/jwt"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrNotStaff     = errors.New("user is not staff")
)

const bearerPrefix = "Bearer "

// ExtractBearerToken returns the token of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", errors.New("missing Bearer prefix")
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), nil
}

// Authenticate puts the user of a valid bearer token in the request context.
// Requests without a token continue anonymously; invalid tokens are rejected.
func Authenticate(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearerToken(r)
			if errors.Is(err, ErrMissingToken) {
				next.ServeHTTP(w, r)
				return
			}

			if err != nil || token == "" {
				web.RespondUnauthorized(w, ErrInvalidToken, message.Unauthorized, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				slog.Info("rejected access token", "reason", err)
				web.RespondUnauthorized(w, ErrInvalidToken, message.Unauthorized, nil)
				return
			}

			ctx := ContextWithUser(r.Context(), User{ID: claims.UserID, Staff: claims.Staff})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := UserFromContext(r.Context()); err != nil {
			web.RespondUnauthorized(w, err, message.Unauthorized, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff rejects requests from anonymous and non-staff users.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := UserFromContext(r.Context())
		if err != nil {
			web.RespondUnauthorized(w, err, message.Unauthorized, nil)
			return
		}

		if !u.Staff {
			web.RespondForbidden(w, ErrNotStaff, message.Forbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
