package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/beankit/bean"
	"github.com/kbukum/beankit/component"
	"github.com/kbukum/beankit/logger"
	"github.com/kbukum/beankit/testutil"
	"github.com/kbukum/beankit/version"
)

type service struct{}

func (*service) BeanScope() bean.Scope { return bean.Context }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, checker HealthChecker) (*Server, *bean.Container) {
	t.Helper()
	c := testutil.Container(t)
	cfg := Config{Host: "127.0.0.1", Port: 0}
	return New(cfg, "test-svc", c, checker, logger.NewNop()), c
}

func do(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []component.HealthStatus
		wantCode   int
		wantStatus string
	}{
		{"no components", nil, http.StatusOK, "healthy"},
		{"all healthy", []component.HealthStatus{component.StatusHealthy}, http.StatusOK, "healthy"},
		{"degraded", []component.HealthStatus{component.StatusHealthy, component.StatusDegraded}, http.StatusOK, "degraded"},
		{"unhealthy", []component.HealthStatus{component.StatusDegraded, component.StatusUnhealthy}, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := func(ctx context.Context) []component.Health {
				out := make([]component.Health, 0, len(tt.statuses))
				for _, s := range tt.statuses {
					out = append(out, component.Health{Name: "c", Status: s})
				}
				return out
			}
			s, _ := newTestServer(t, checker)
			w, body := do(t, s, "/health")
			if w.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantCode)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %s", body["status"], tt.wantStatus)
			}
			if body["service"] != "test-svc" {
				t.Errorf("service = %v", body["service"])
			}
		})
	}
}

func TestListBeans(t *testing.T) {
	s, c := newTestServer(t, nil)
	bean.MustGet[*service](context.Background(), c)

	w, body := do(t, s, "/beans")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data %v", body["data"])
	}
	first := data[0].(map[string]any)
	if first["type"] != "*admin.service" || first["scope"] != "context" || first["state"] != "ready" {
		t.Errorf("unexpected bean %v", first)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestGetBean(t *testing.T) {
	s, c := newTestServer(t, nil)
	bean.MustGet[*service](context.Background(), c)

	w, body := do(t, s, "/beans/admin.service")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	if data := body["data"].(map[string]any); data["type"] != "*admin.service" {
		t.Errorf("unexpected bean %v", data)
	}

	w, body = do(t, s, "/beans/admin.missing")
	if w.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want 404", w.Code)
	}
	if e, _ := body["error"].(map[string]any); e == nil || e["code"] != "NOT_FOUND" {
		t.Errorf("unexpected error body %v", body)
	}
}

func TestServerLifecycle(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx := context.Background()

	if h := s.Health(ctx); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := s.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status code = %d", resp.StatusCode)
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.Describe().Details != "127.0.0.1:0" {
		t.Errorf("describe after stop = %s", s.Describe().Details)
	}
}

func TestVersion(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w, body := do(t, s, "/version")
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	data := body["data"].(map[string]any)
	if data["version"] != version.Get().Version {
		t.Errorf("version = %v, want %s", data["version"], version.Get().Version)
	}
}

func TestServerServesOverNetwork(t *testing.T) {
	s, _ := newTestServer(t, nil)
	testutil.Start(t, s)
	testutil.RequireHealthy(t, s)

	resp, err := http.Get("http://" + s.Addr() + "/version")
	if err != nil {
		t.Fatalf("GET /version: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status code = %d", resp.StatusCode)
	}
}
