package trace

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveWithoutAPIKey(t *testing.T) {
	tracer := NewTracer("")

	called := false
	err := tracer.Observe("suggested_questions", nil, func() error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestObserveReturnsFnError(t *testing.T) {
	tracer := NewTracer("")

	wantErr := errors.New("model overloaded")
	err := tracer.Observe("suggested_questions", nil, func() error {
		return wantErr
	})

	assert.Equal(t, wantErr, err)
}

func TestObserveShipsTraceLog(t *testing.T) {
	var got traceLog
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/parea/v1/trace_log", r.URL.Path)
		gotKey = r.Header.Get("x-api-key")
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tracer := NewTracer("test-key")
	tracer.baseURL = server.URL

	err := tracer.Observe("suggested_questions", map[string]string{"article_count": "3"}, func() error {
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "suggested_questions", got.TraceName)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "3", got.Metadata["article_count"])
	assert.NotEmpty(t, got.TraceID)
	assert.NotEmpty(t, got.StartTime)
	assert.True(t, got.EvaluateOff)
}

func TestObserveShipsErrorStatus(t *testing.T) {
	var got traceLog
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer server.Close()

	tracer := NewTracer("test-key")
	tracer.baseURL = server.URL

	err := tracer.Observe("chat_answer", nil, func() error {
		return errors.New("rate limited")
	})
	require.Error(t, err)

	assert.Equal(t, "error", got.Status)
	assert.Equal(t, "rate limited", got.Error)
}

func TestObserveSwallowsDeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	tracer := NewTracer("test-key")
	tracer.baseURL = server.URL

	// A failed ship never surfaces to the caller.
	err := tracer.Observe("chat_answer", nil, func() error { return nil })
	assert.NoError(t, err)
}

func TestNewTraceIDUnique(t *testing.T) {
	assert.Len(t, newTraceID(), 32)
	assert.NotEqual(t, newTraceID(), newTraceID())
}
