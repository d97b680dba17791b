package middleware

import (
	"net/http"
	"time"

	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

// RequestLog writes one tagged line per completed request. Liveness-probe
// traffic goes to [HEALTH], everything else to [INFO], so probe noise can be
// filtered downstream.
func RequestLog(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(recorder, r)

			line := logger.Info
			if r.URL.Path == "/ping" {
				line = logger.Health
			}
			line("%s %s -> %d (%dms)", r.Method, r.URL.Path, recorder.statusCode, time.Since(start).Milliseconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
