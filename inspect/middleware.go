package inspect

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 256

type requestIDKey struct{}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter

	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// requestLogging logs method, path, status and duration of every request.
// 4xx answers log at Warn, 5xx at Error.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", RequestID(r.Context())),
		}

		msg := "http request"

		switch {
		case sw.status >= http.StatusInternalServerError:
			slog.Error(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
		case sw.status >= http.StatusBadRequest:
			slog.Warn(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
		default:
			slog.Info(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
		}
	})
}

// recovery turns a panic in next into a 500 answer and logs the stack.
// A panic after the status was written is only logged.
func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if err, ok := rec.(error); ok && err == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			attrs := []any{
				slog.String("panic", fmt.Sprintf("%v", rec)),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			}

			if sw.status != 0 {
				slog.Error("panic recovered after response was already written", attrs...) //nolint:gosec

				return
			}

			slog.Error("panic recovered", attrs...) //nolint:gosec // G706: message is a hardcoded constant.

			http.Error(sw, "Internal Server Error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(sw, r)
	})
}

// requestID keeps an incoming X-Request-ID or generates one, echoes it in
// the response and stores it in the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID returns the request ID stored in ctx, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)

	return id
}

// rateLimit answers 429 with a Retry-After header once limiter is exhausted.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := limiter.Reserve()

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
