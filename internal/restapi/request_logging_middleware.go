package restapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"wageconv.org/explorer/internal/logging"
)

// RequestIDHeader carries the short request id echoed back to clients.
const RequestIDHeader = "X-Request-ID"

// RequestCounter counts finished requests; *metrics.Metrics satisfies it.
type RequestCounter interface {
	IncHTTPRequest(method string, status int)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// NewRequestLoggingMiddleware creates middleware that tags each request with an id,
// puts a request-scoped logger in its context and logs the outcome.
// counter may be nil.
func NewRequestLoggingMiddleware(logger *slog.Logger, counter RequestCounter) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()[:8]
			}
			w.Header().Set(RequestIDHeader, requestID)

			requestLogger := logger.With(slog.String("request_id", requestID))
			r = r.WithContext(logging.WithLogger(r.Context(), requestLogger))

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			logging.LogHTTPRequest(requestLogger,
				r.Method,
				r.URL.Path,
				wrapped.statusCode,
				float64(duration.Nanoseconds())/1e6,
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.String("component", "http_server"))

			if counter != nil {
				counter.IncHTTPRequest(r.Method, wrapped.statusCode)
			}
		})
	}
}
