package logger

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const slowRequest = 100 * time.Millisecond

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if r.statusCode == 0 {
		r.statusCode = statusCode
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.statusCode == 0 {
		r.statusCode = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.size += size
	return size, err
}

func MiddlewareLogging(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &responseRecorder{ResponseWriter: w}

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Msg("request started")

			next.ServeHTTP(recorder, r)

			if recorder.statusCode == 0 {
				recorder.statusCode = http.StatusOK
			}
			duration := time.Since(start)

			// 5xx - error, 4xx - warn, остальное - info
			var event *zerolog.Event
			switch {
			case recorder.statusCode >= http.StatusInternalServerError:
				event = log.Error().Str("error_type", "server_error")
			case recorder.statusCode >= http.StatusBadRequest:
				event = log.Warn().Str("error_type", "client_error")
			default:
				event = log.Info()
			}

			event = event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.statusCode).
				Dur("duration", duration).
				Int("bytes", recorder.size).
				Str("ip", r.RemoteAddr)

			if duration > slowRequest {
				event = event.Bool("slow", true)
			}

			event.Msg("request completed")
		})
	}
}
