package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/bookshelf/internal/ident"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newTestTimer(step time.Duration) *Timer {
	t := NewTimer()
	t.now = fakeClock(step)
	return t
}

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestTimer(t *testing.T) {
	t.Run("start and end", func(t *testing.T) {
		timer := newTestTimer(10 * time.Millisecond)

		require.True(t, timer.Start("[GET] /books"))
		elapsed, ok := timer.End("[GET] /books")
		require.True(t, ok)
		assert.Equal(t, 10*time.Millisecond, elapsed)
	})

	t.Run("colliding label keeps first start", func(t *testing.T) {
		timer := newTestTimer(10 * time.Millisecond)

		require.True(t, timer.Start("label"))
		assert.False(t, timer.Start("label"))

		elapsed, ok := timer.End("label")
		require.True(t, ok)
		assert.Equal(t, 20*time.Millisecond, elapsed, "measured from the first start")

		_, ok = timer.End("label")
		assert.False(t, ok, "second end of a shared label finds nothing running")
	})

	t.Run("end unknown label", func(t *testing.T) {
		_, ok := NewTimer().End("missing")
		assert.False(t, ok)
	})
}

func TestRequestLabel(t *testing.T) {
	r := httptest.NewRequest("delete", "/books/abc?author=Herb", nil)
	assert.Equal(t, "[DELETE] /books/abc?author=Herb", requestLabel(r))
}

func TestLogRequests(t *testing.T) {
	logger, buf := newBufferLogger()
	timer := newTestTimer(5 * time.Millisecond)

	var handlerCalls int
	rt := NewRouter()
	rt.Use(LogRequests(logger, timer))
	rt.Handle("POST /books", func(w http.ResponseWriter, r *http.Request) {
		handlerCalls++
		assert.Empty(t, buf.String(), "nothing is logged before the handler finishes")
		writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
	})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{}`)))

	assert.Equal(t, 1, handlerCalls)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String(), "response passes through untouched")

	out := buf.String()
	assert.Contains(t, out, `"msg":"[POST] /books"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"elapsed":5000000`)
	assert.Equal(t, 1, strings.Count(out, "\n"), "exactly one log line per request")
}

func TestLogRequestsCollision(t *testing.T) {
	logger, buf := newBufferLogger()
	timer := newTestTimer(time.Millisecond)
	ic := LogRequests(logger, timer)

	r := httptest.NewRequest(http.MethodGet, "/books", nil)
	first := ic(r)
	second := ic(r)
	first.After(http.StatusOK)
	second.After(http.StatusOK)

	out := buf.String()
	assert.Contains(t, out, "timer label already running")
	assert.Contains(t, out, "timer label not running")
	assert.Equal(t, 1, strings.Count(out, `"msg":"[GET] /books"`))
}

func TestValidateParam(t *testing.T) {
	rt := NewRouter()
	rt.UseParam("id", ValidateParam("id", ident.IsValid))

	var reached []string
	rt.Handle("PUT /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		reached = append(reached, r.PathValue("id"))
		w.WriteHeader(http.StatusOK)
	})

	valid := ident.New()
	tests := []struct {
		name     string
		id       string
		wantCode int
		wantBody string
	}{
		{"valid", valid, http.StatusOK, ""},
		{"not a uuid", "not-a-uuid", http.StatusBadRequest, `{"error":"Invalid project ID."}`},
		{"uppercase", strings.ToUpper(valid), http.StatusBadRequest, `{"error":"Invalid project ID."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/books/"+tt.id, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}

	assert.Equal(t, []string{valid}, reached, "only the valid id reaches the handler")
}
