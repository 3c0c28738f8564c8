package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/lmskit/internal/pkg/message"
	"github.com/ferdiebergado/lmskit/internal/pkg/web"
	"github.com/ferdiebergado/lmskit/internal/platform/validation"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidateInput checks the payload stored by DecodePayload and responds with
// the field errors when it is invalid.
func ValidateInput[T any](validator validation.Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Info("Validating input...")
			payload, err := web.PayloadFromContext[T](r.Context())
			if err != nil {
				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if errs := validator.ValidateStruct(payload); len(errs) > 0 {
				web.RespondUnprocessableEntity(w, ErrInvalidInput, message.InvalidInput, errs)
				return
			}

			slog.Info("Input is valid.")
			next.ServeHTTP(w, r)
		})
	}
}
