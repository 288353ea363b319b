package idempotency

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskboard-dev/taskboard/shared/errors"
	"github.com/taskboard-dev/taskboard/shared/logger"
	"github.com/taskboard-dev/taskboard/shared/utils"
)

const HeaderKey = "Idempotency-Key"

type Deduper interface {
	Add(ctx context.Context, scope, key string) (bool, error)
	Remove(ctx context.Context, scope, key string) error
}

// Middleware rejects a repeated Idempotency-Key with 409. Requests without the
// header, or with a nil deduper, pass through untouched. Deduper failures are
// logged and never block the request.
func Middleware(deduper Deduper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if deduper == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderKey)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			scope := r.Method + " " + r.URL.Path

			added, err := deduper.Add(r.Context(), scope, key)
			if err != nil {
				logger.Log.Warn("idempotency check failed", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !added {
				utils.WriteErrorAndStatusCode(w, errors.Conflict("duplicate request"))
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() >= http.StatusInternalServerError {
				// detached so a cancelled request still frees its key
				if err := deduper.Remove(context.WithoutCancel(r.Context()), scope, key); err != nil {
					logger.Log.Warn("failed to release idempotency key", "scope", scope, "error", err)
				}
			}
		})
	}
}
