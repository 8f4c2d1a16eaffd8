package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nirmanlabs/nirman/pkg/layout"
	"github.com/nirmanlabs/nirman/pkg/pipeline"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(NewServer(runner, nil, "", 0, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if id := resp.Header.Get("X-Request-Id"); id == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestPlan(t *testing.T) {
	srv := testServer(t)

	body, _ := json.Marshal(plan.DefaultSpec())
	resp, err := http.Post(srv.URL+"/api/plan", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/plan: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Blueprint == nil || len(result.Blueprint.Floors) != 2 {
		t.Errorf("blueprint missing or wrong: %+v", result.Blueprint)
	}
	if result.Analysis == nil || result.Analysis.Summary == "" {
		t.Error("missing analysis")
	}
	if _, err := uuid.Parse(result.PlanID); err != nil {
		t.Errorf("plan ID %q is not a UUID", result.PlanID)
	}
	if got := resp.Header.Get("X-Plan-Id"); got != result.PlanID {
		t.Errorf("X-Plan-Id = %q, want %q", got, result.PlanID)
	}
}

func TestPlanAppliesDefaults(t *testing.T) {
	srv := testServer(t)

	// Minimal body: defaults fill the rest.
	resp, err := http.Post(srv.URL+"/api/plan", "application/json",
		bytes.NewReader([]byte(`{"area_sqft": 1500}`)))
	if err != nil {
		t.Fatalf("POST /api/plan: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Spec.AreaSqft != 1500 || result.Spec.Floors == 0 {
		t.Errorf("spec = %+v", result.Spec)
	}
}

func TestPlanHonoursConfiguredAspectRatio(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(NewServer(runner, nil, "", 1.4, logger).Handler())
	t.Cleanup(srv.Close)

	spec := plan.DefaultSpec()
	body, _ := json.Marshal(spec)
	resp, err := http.Post(srv.URL+"/api/plan", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/plan: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}

	var result pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := layout.DeriveEnvelope(spec.AreaSqft, 1.4)
	if result.Blueprint.Envelope != want {
		t.Errorf("envelope = %+v, want %+v (configured ratio, not the default)",
			result.Blueprint.Envelope, want)
	}
}

func TestPlanValidationErrors(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"area too small", `{"area_sqft": 5}`, http.StatusUnprocessableEntity},
		{"too many floors", `{"floors": 99}`, http.StatusUnprocessableEntity},
		{"bad strategy", `{"strategy": "diagonal"}`, http.StatusUnprocessableEntity},
		{"bad soil", `{"site_analysis": {"soil_type": "lava"}}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/plan", "application/json",
				bytes.NewReader([]byte(tt.body)))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["detail"] == "" {
				t.Error("error body missing detail")
			}
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := testServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-Id"); got != "client-supplied-id" {
		t.Errorf("X-Request-Id = %q, want the client-supplied value", got)
	}
}
