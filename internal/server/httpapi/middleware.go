package httpapi

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging tags every request with a fresh id and logs method, path,
// status and duration after the handler returns.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info(r.Context(), "request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// rateLimit rejects clients exceeding rps requests per second per IP with
// a JSON 429 body.
func (s *Server) rateLimit(rps float64) mux.MiddlewareFunc {
	lmt := tollbooth.NewLimiter(rps, nil)
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"Error":"too many requests"}`)
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}
