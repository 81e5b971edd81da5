package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/username/acctfolio/src/logger"
)

type contextKey string

const requestIDContextKey = contextKey("requestID")

// RequestIDMiddleware tags every request with an ID so log lines from one
// computation can be correlated. A caller-supplied X-Request-ID is honored;
// otherwise a fresh UUID is issued. The ID is echoed back in the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		if logger.L != nil {
			logger.L.Debug("Request received", "requestID", requestID, "method", r.Method, "path", r.URL.Path)
		}

		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext returns the request ID set by RequestIDMiddleware.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDContextKey).(string)
	return requestID, ok
}
