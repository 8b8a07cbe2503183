package trace

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/parea-ai/wikichat-parea/internal/metrics"
)

const defaultBaseURL = "https://parea.ai"

// Tracer wraps outbound LLM calls to record latency and metadata. Trace
// logs are shipped to Parea; delivery failures are logged and swallowed so
// tracing can never fail a request. With no API key the tracer only feeds
// the local latency histogram.
type Tracer struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewTracer(apiKey string) *Tracer {
	return &Tracer{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Observe times fn, records the result and returns fn's error unchanged.
func (t *Tracer) Observe(name string, metadata map[string]string, fn func() error) error {
	start := time.Now()
	err := fn()
	end := time.Now()

	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.LLMLatency.WithLabelValues(name, status).Observe(end.Sub(start).Seconds())

	if t.apiKey == "" {
		return err
	}

	log := traceLog{
		TraceID:     newTraceID(),
		TraceName:   name,
		StartTime:   start.UTC().Format(time.RFC3339Nano),
		EndTime:     end.UTC().Format(time.RFC3339Nano),
		LatencySecs: end.Sub(start).Seconds(),
		Status:      status,
		Metadata:    metadata,
		EvaluateOff: true,
	}
	if err != nil {
		log.Error = err.Error()
	}

	if sendErr := t.send(log); sendErr != nil {
		slog.Error("error shipping trace log", "trace", name, "error", sendErr)
	}

	return err
}

func (t *Tracer) send(log traceLog) error {
	body, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, t.baseURL+"/api/parea/v1/trace_log", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("parea request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("parea request: status %d", resp.StatusCode)
	}

	return nil
}

func newTraceID() string {
	var buf [16]byte
	rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

type traceLog struct {
	TraceID     string            `json:"trace_id"`
	TraceName   string            `json:"trace_name"`
	StartTime   string            `json:"start_timestamp"`
	EndTime     string            `json:"end_timestamp"`
	LatencySecs float64           `json:"latency"`
	Status      string            `json:"status"`
	Error       string            `json:"error,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	EvaluateOff bool              `json:"evaluate_off"`
}
