package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyor/internal/api"
	"surveyor/internal/history"
)

func newTestDispatcher(t *testing.T, handler http.HandlerFunc) (*Dispatcher, *history.Cache) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cache := history.NewCache(history.NewMemStore(), nil)
	d := New(api.NewClient(srv.URL, nil), cache, nil)
	d.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return d, cache
}

func structuredHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"structured_data": map[string]any{
				"domain":   "AI in Agriculture",
				"overview": "Great field.\nMore.",
				"papers":   []any{},
				"ideas":    []any{},
				"venues":   map[string]any{"conferences": []any{}, "journals": []any{}},
			},
		})
	}
}

func TestRunRecordsHistoryWithRawOverviewPreview(t *testing.T) {
	d, cache := newTestDispatcher(t, structuredHandler(t))

	resp, err := d.Run(context.Background(), "AI in Agriculture", false, "gemini")
	require.NoError(t, err)
	require.True(t, resp.IsStructured())

	entries := cache.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "AI in Agriculture", entries[0].Query)
	// The preview keeps the raw overview text; the dashboard separately
	// shows only its first line. The two derivations diverge on purpose.
	assert.Equal(t, "Great field.\nMore.", entries[0].SummaryPreview)
}

func TestRunTrimsQuestionBeforeRecording(t *testing.T) {
	d, cache := newTestDispatcher(t, structuredHandler(t))

	_, err := d.Run(context.Background(), "  AI in Agriculture \n", false, "gemini")
	require.NoError(t, err)

	entries := cache.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "AI in Agriculture", entries[0].Query)
}

func TestRunUsesAnswerPrefixWhenNotStructured(t *testing.T) {
	long := strings.Repeat("a", 300)
	d, cache := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"answer": long})
	})

	_, err := d.Run(context.Background(), "q", false, "gemini")
	require.NoError(t, err)

	entries := cache.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, long[:160], entries[0].SummaryPreview)
}

func TestRunValidationErrorTouchesNothing(t *testing.T) {
	called := false
	d, cache := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := d.Run(context.Background(), "   ", false, "gemini")
	assert.ErrorIs(t, err, api.ErrEmptyQuestion)
	assert.False(t, called)
	assert.Empty(t, cache.Entries())
}

func TestRunHTTPErrorLeavesHistoryUntouched(t *testing.T) {
	d, cache := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp, err := d.Run(context.Background(), "q", false, "gemini")
	assert.Nil(t, resp)
	assert.Error(t, err)
	assert.Empty(t, cache.Entries())
}

func TestRunWithoutHistoryCache(t *testing.T) {
	srv := httptest.NewServer(structuredHandler(t))
	defer srv.Close()

	d := New(api.NewClient(srv.URL, nil), nil, nil)
	resp, err := d.Run(context.Background(), "q", false, "gemini")
	require.NoError(t, err)
	assert.True(t, resp.IsStructured())
}

func TestStateTransitions(t *testing.T) {
	s := State{Provider: "gemini"}

	s = s.BeginSubmit("AI in Agriculture")
	assert.Equal(t, PhaseSubmitting, s.Phase)
	assert.True(t, s.Loading())
	assert.Equal(t, "AI in Agriculture", s.OriginalQuestion)
	assert.Nil(t, s.Response)
	assert.Nil(t, s.Err)

	// Success settles with a response and no error.
	resp := &api.GenerateResponse{Answer: "a"}
	done := s.Settle(resp, nil)
	assert.Equal(t, PhaseSuccess, done.Phase)
	assert.False(t, done.Loading())
	assert.Same(t, resp, done.Response)
	assert.Nil(t, done.Err)

	// Failure settles with an error and no response.
	failed := s.Settle(nil, assert.AnError)
	assert.Equal(t, PhaseFailed, failed.Phase)
	assert.Nil(t, failed.Response)
	assert.Equal(t, assert.AnError, failed.Err)

	// OriginalQuestion sticks with the settled result while the live
	// input drifts.
	failed.Question = "something new being typed"
	assert.Equal(t, "AI in Agriculture", failed.OriginalQuestion)

	// Reset keeps the toggles only.
	reset := failed.Reset()
	assert.Equal(t, PhaseIdle, reset.Phase)
	assert.Equal(t, "gemini", reset.Provider)
	assert.Empty(t, reset.Question)
	assert.Nil(t, reset.Err)
}

func TestSettleNeverHoldsBothResponseAndError(t *testing.T) {
	s := State{}.BeginSubmit("q")

	// Even a buggy caller passing both resolves to the error side.
	settled := s.Settle(&api.GenerateResponse{Answer: "a"}, assert.AnError)
	assert.Nil(t, settled.Response)
	assert.NotNil(t, settled.Err)
}
