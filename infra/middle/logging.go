package middle

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/centpay/paygate/infra/opensearch"
	"github.com/google/uuid"
)

// statusWriter wraps http.ResponseWriter to capture the status code
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// GatewayLoggingMiddleware ships one log entry per gateway API request
// to the OpenSearch sink. Failures to index never fail the request.
func GatewayLoggingMiddleware(osLogger *opensearch.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isGatewayEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
				r.Header.Set("X-Request-ID", requestID)
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sw, r)

			entry := opensearch.GatewayLog{
				Timestamp:        start,
				Gateway:          "paypal",
				Method:           r.Method,
				Endpoint:         r.URL.Path,
				RequestID:        requestID,
				ClientIP:         GetClientIP(r),
				StatusCode:       sw.statusCode,
				ProcessingTimeMs: time.Since(start).Milliseconds(),
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = osLogger.LogGatewayRequest(ctx, entry)
			}()
		})
	}
}

// isGatewayEndpoint reports whether the path belongs to the payment API
func isGatewayEndpoint(path string) bool {
	return strings.HasPrefix(path, "/v1/payments") || strings.HasPrefix(path, "/v1/profiles")
}
