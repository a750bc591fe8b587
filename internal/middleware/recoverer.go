package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/taskboardhq/taskboard-api/internal/httpjson"
)

// Recoverer converts panics into a generic 500 response. Panic detail is
// included in the body only in development mode.
func Recoverer(logger *zerolog.Logger, development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					if development {
						httpjson.ErrorWithDetail(
							w,
							http.StatusInternalServerError,
							"Something went wrong!",
							fmt.Sprint(rec),
						)
						return
					}

					httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
