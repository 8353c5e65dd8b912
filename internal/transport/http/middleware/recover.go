package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/unais-08/blogs-fullstack/internal/logging"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a logged 500.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}

				logging.FromContext(r.Context(), log).Error("request panic",
					zap.String("method", r.Method),
					zap.String("uri", r.URL.RequestURI()),
					zap.Any("panic", p),
					zap.ByteString("stack", debug.Stack()),
				)
				response.Fail(w, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
