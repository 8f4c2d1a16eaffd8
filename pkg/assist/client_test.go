package assist

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/estimate"
	"github.com/nirmanlabs/nirman/pkg/httputil"
	"github.com/nirmanlabs/nirman/pkg/layout"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// chatServer fakes an OpenAI-compatible chat-completions endpoint that
// always answers with the given message content.
func chatServer(t *testing.T, content string, gotReq *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if gotReq != nil {
			if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, APIKey: "test-key"}, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Config{APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Model() != DefaultModel {
		t.Errorf("model = %q, want %q", c.Model(), DefaultModel)
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://gateway.example/v1")
	t.Setenv(EnvAPIKey, "prefixed")
	t.Setenv(EnvAPIKey2, "plain")

	cfg := ConfigFromEnv()
	if cfg.BaseURL != "https://gateway.example/v1" || cfg.APIKey != "prefixed" {
		t.Errorf("prefixed variables should win: %+v", cfg)
	}

	t.Setenv(EnvAPIKey, "")
	cfg = ConfigFromEnv()
	if cfg.APIKey != "plain" {
		t.Errorf("OPENAI_API_KEY fallback not applied: %+v", cfg)
	}
	if !cfg.Enabled() {
		t.Error("config with a key should be enabled")
	}

	t.Setenv(EnvAPIKey2, "")
	if ConfigFromEnv().Enabled() {
		t.Error("config without a key should be disabled")
	}
}

func TestAnalyze(t *testing.T) {
	analysis := Analysis{
		Summary:          "A compact residential build.",
		Risks:            []string{"monsoon delays"},
		Recommendations:  []string{"bulk cement"},
		MaterialInsights: "steel heavy",
		CostOptimization: "prefab slabs",
		HindiSummary:     "छोटी परियोजना।",
	}
	content, _ := json.Marshal(analysis)

	var req chatRequest
	srv := chatServer(t, string(content), &req)
	defer srv.Close()

	spec := plan.DefaultSpec()
	costs := estimate.EstimateCosts(spec)
	workers := estimate.EstimateWorkers(spec)
	materials := estimate.EstimateMaterials(spec)

	got, err := testClient(t, srv.URL).Analyze(context.Background(), spec, costs, workers, materials)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Summary != analysis.Summary || got.HindiSummary != analysis.HindiSummary {
		t.Errorf("Analyze = %+v", got)
	}

	if req.Model != DefaultModel {
		t.Errorf("request model = %q", req.Model)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
		t.Errorf("request should demand a JSON object response: %+v", req.ResponseFormat)
	}
	if len(req.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(req.Messages))
	}
}

func TestAnalyzeMalformedContent(t *testing.T) {
	srv := chatServer(t, "not json at all", nil)
	defer srv.Close()

	spec := plan.DefaultSpec()
	_, err := testClient(t, srv.URL).Analyze(context.Background(), spec,
		estimate.EstimateCosts(spec), estimate.EstimateWorkers(spec), nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestCompleteJSONNonRetryableStatus(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	var out map[string]any
	err := testClient(t, srv.URL).completeJSON(context.Background(), "prompt", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (4xx must not retry)", calls)
	}
}

func TestCheckStatus(t *testing.T) {
	if err := checkStatus(200); err != nil {
		t.Errorf("200: %v", err)
	}
	for _, code := range []int{500, 503, 429} {
		err := checkStatus(code)
		var re *httputil.RetryableError
		if !stderrors.As(err, &re) {
			t.Errorf("status %d should be retryable, got %v", code, err)
		}
	}
	var re *httputil.RetryableError
	if stderrors.As(checkStatus(401), &re) {
		t.Error("401 should not be retryable")
	}
}

func TestProposeLayout(t *testing.T) {
	floors := layoutResponse{Floors: []layout.Floor{{
		Index: 0,
		Label: "Ground Floor",
		Rooms: []layout.Room{{
			ID: "f0-corridor", Name: "Corridor",
			X: 0, Y: 17.1, Width: 53.7, Height: 3, Type: layout.RoomCorridor,
		}},
	}}}
	content, _ := json.Marshal(floors)

	srv := chatServer(t, string(content), nil)
	defer srv.Close()

	spec := plan.DefaultSpec()
	env := layout.DeriveEnvelope(spec.AreaSqft, layout.DefaultAspectRatio)
	got, err := testClient(t, srv.URL).ProposeLayout(context.Background(), spec, layout.Hints{Envelope: env})
	if err != nil {
		t.Fatalf("ProposeLayout: %v", err)
	}
	if len(got) != 1 || got[0].Rooms[0].ID != "f0-corridor" {
		t.Errorf("ProposeLayout = %+v", got)
	}
}

func TestProposeLayoutEmpty(t *testing.T) {
	srv := chatServer(t, `{"floors": []}`, nil)
	defer srv.Close()

	spec := plan.DefaultSpec()
	_, err := testClient(t, srv.URL).ProposeLayout(context.Background(), spec, layout.Hints{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestFallbackAnalysis(t *testing.T) {
	spec := plan.DefaultSpec()
	costs := estimate.EstimateCosts(spec)
	workers := estimate.EstimateWorkers(spec)

	a := FallbackAnalysis(spec, costs, workers)
	if a.Summary == "" || a.HindiSummary == "" {
		t.Error("fallback analysis should always carry summaries")
	}
	if len(a.Risks) != 5 || len(a.Recommendations) != 4 {
		t.Errorf("got %d risks / %d recommendations, want 5/4", len(a.Risks), len(a.Recommendations))
	}

	// Deterministic: same inputs, same text.
	b := FallbackAnalysis(spec, costs, workers)
	if a.Summary != b.Summary {
		t.Error("fallback analysis should be deterministic")
	}
}
