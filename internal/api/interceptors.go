package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dreamware/bookshelf/internal/tracing"
)

// Error messages returned to clients.
const (
	msgInvalidID    = "Invalid project ID."
	msgBookNotFound = "Book not found"
	msgNotFound     = "Not found"
)

// Timer measures elapsed time under string labels. A label can only be
// running once; concurrent requests with the same label share a slot.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	starts map[string]time.Time
}

// NewTimer returns a timer using the wall clock.
func NewTimer() *Timer {
	return &Timer{now: time.Now, starts: make(map[string]time.Time)}
}

// Start records the start time for label. It returns false, keeping the
// earlier start time, when label is already running.
func (t *Timer) Start(label string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, running := t.starts[label]; running {
		return false
	}
	t.starts[label] = t.now()
	return true
}

// End stops label and returns the time since its start. It returns false
// when label is not running.
func (t *Timer) End(label string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, running := t.starts[label]
	if !running {
		return 0, false
	}
	delete(t.starts, label)
	return t.now().Sub(start), true
}

// requestLabel is "[METHOD] /path?query".
func requestLabel(r *http.Request) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(r.Method), r.URL.RequestURI())
}

// LogRequests times every request under its label, logs the elapsed time once
// the response is written, and records a server span around it.
func LogRequests(logger *slog.Logger, timer *Timer) Interceptor {
	return func(r *http.Request) Decision {
		label := requestLabel(r)
		if !timer.Start(label) {
			logger.Warn("timer label already running", slog.String("label", label))
		}

		ctx, span := tracing.StartSpan(r.Context(), label)
		span.WithAttributes(map[string]string{
			"http.request.method": r.Method,
			"url.path":            r.URL.Path,
		})

		return Decision{
			Request: r.WithContext(ctx),
			After: func(status int) {
				span.EndWithHTTPStatus(status)
				elapsed, ok := timer.End(label)
				if !ok {
					logger.Warn("timer label not running", slog.String("label", label))
					return
				}
				logger.Info(label, slog.Int("status", status), slog.Duration("elapsed", elapsed))
			},
		}
	}
}

// ValidateParam rejects requests whose path wildcard name fails valid.
func ValidateParam(name string, valid func(string) bool) Interceptor {
	return func(r *http.Request) Decision {
		if !valid(r.PathValue(name)) {
			return Stop(http.StatusBadRequest, errorBody{Error: msgInvalidID})
		}
		return Proceed(r)
	}
}
