package alert

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantmetrics/plantpulse/pkg/types"
)

func sampleAlert() types.Alert {
	return types.Alert{
		Level:     types.AlertLevelWarning,
		MachineID: "M3",
		Metric:    "failure_risk",
		Message:   "failure risk 0.82 above threshold 0.60",
		Timestamp: time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC),
	}
}

func TestNewDispatcher_UnknownType(t *testing.T) {
	_, err := NewDispatcher([]types.AlertConfig{{Type: "pager"}}, nil)
	assert.Error(t, err)
}

func TestNewDispatcher_WebhookRequiresURL(t *testing.T) {
	_, err := NewDispatcher([]types.AlertConfig{{Type: types.AlertWebhook}}, nil)
	assert.Error(t, err)
}

func TestFileSink_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.jsonl")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Send(ctx, sampleAlert()))
	require.NoError(t, sink.Send(ctx, sampleAlert()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var a types.Alert
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &a))
		assert.Equal(t, "M3", a.MachineID)
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestWebhookSink_PostsJSON(t *testing.T) {
	var got types.Alert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL)
	require.NoError(t, sink.Send(context.Background(), sampleAlert()))
	assert.Equal(t, "failure_risk", got.Metric)
}

func TestWebhookSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL)
	assert.Error(t, sink.Send(context.Background(), sampleAlert()))
}

func TestWebhookSink_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.Error(t, sink.Send(ctx, sampleAlert()))
	}
	// After three consecutive failures the breaker opens and stops
	// reaching the endpoint.
	assert.Equal(t, int32(3), calls.Load())
}

func TestDispatcher_ContinuesPastFailingSink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "alerts.jsonl")
	d, err := NewDispatcher([]types.AlertConfig{
		{Type: types.AlertWebhook, URL: srv.URL},
		{Type: types.AlertFile, Path: path},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, d.Sinks())

	d.Dispatch(context.Background(), sampleAlert())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data, "file sink should still receive the alert")
}
