package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nutriscan/nutriscan/internal/openfoodfacts"
	"github.com/nutriscan/nutriscan/internal/score"
	"github.com/nutriscan/nutriscan/internal/store"
)

// Mocks

type mockStore struct {
	scans map[uuid.UUID]*store.Scan
}

func newMockStore() *mockStore {
	return &mockStore{scans: make(map[uuid.UUID]*store.Scan)}
}
func (m *mockStore) RecordScan(_ context.Context, s *store.Scan) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	m.scans[s.ID] = s
	return nil
}
func (m *mockStore) GetScan(_ context.Context, id uuid.UUID) (*store.Scan, error) {
	return m.scans[id], nil
}
func (m *mockStore) ListScans(_ context.Context, filter store.ScanFilter) ([]*store.Scan, error) {
	var out []*store.Scan
	for _, s := range m.scans {
		if filter.Barcode != "" && s.Barcode != filter.Barcode {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
func (m *mockStore) GetStats(_ context.Context) (*store.ScanStats, error) {
	return &store.ScanStats{TotalScans: len(m.scans), BandCounts: map[string]int{}}, nil
}
func (m *mockStore) Close() error { return nil }

type mockProducts struct {
	products map[string]*openfoodfacts.Product
}

func (m *mockProducts) GetProduct(_ context.Context, code string) (*openfoodfacts.Product, error) {
	p, ok := m.products[code]
	if !ok {
		return nil, openfoodfacts.ErrNotFound
	}
	return p, nil
}

type mockEvents struct {
	published []string
}

func (m *mockEvents) Publish(subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}
func (m *mockEvents) Close() {}

func setupTestRouter() (http.Handler, *mockStore, *mockEvents) {
	ms := newMockStore()
	ev := &mockEvents{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := score.NewEngine(score.NewRegistry(), logger)
	products := &mockProducts{products: map[string]*openfoodfacts.Product{
		"737628064502": {
			Barcode: "737628064502",
			Name:    "Rice Noodles",
			Brands:  "Thai Kitchen",
			Nutrients: score.Record{
				Sugars:     score.AmountOf(2),
				Sodium:     score.AmountOf(0.9), // 900mg: penalty 6
				Fiber:      score.AmountOf(1),
				Proteins:   score.AmountOf(3),
				EnergyKcal: score.AmountOf(350),
			},
		},
	}}
	router := NewRouter(engine, products, ms, ev, "test-token", logger)
	return router, ms, ev
}

func TestPostScore(t *testing.T) {
	router, _, _ := setupTestRouter()

	body := `{"product_name": "Granola", "nutrients": {"sugars": 25, "fiber": 8}}`
	req := httptest.NewRequest("POST", "/api/v1/score", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report score.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// 100 - 5 + 8 = 103, clamped.
	if report.Score != 100 || report.Band != "A" {
		t.Errorf("expected 100/A, got %d/%s", report.Score, report.Band)
	}
	if len(report.GoodPoints) != 1 || len(report.Concerns) != 1 {
		t.Errorf("unexpected breakdown: %+v", report)
	}
}

func TestPostScoreInvalidBody(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("POST", "/api/v1/score", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestPostScoreNAValues(t *testing.T) {
	router, _, _ := setupTestRouter()

	body := `{"nutrients": {"sugars": "N/A", "saturated_fat": null, "fiber": "14"}}`
	req := httptest.NewRequest("POST", "/api/v1/score", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report score.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Score != 100 {
		t.Errorf("expected 100 with unknowns as zero, got %d", report.Score)
	}
}

func TestAnalyzeProduct(t *testing.T) {
	router, ms, ev := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/products/737628064502", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Product.Name != "Rice Noodles" {
		t.Errorf("product name = %s", resp.Product.Name)
	}
	// Only penalty: sodium 900mg -> (900-600)/50 = 6.
	if resp.Analysis.Score != 94 || resp.Analysis.Band != "A" {
		t.Errorf("expected 94/A, got %d/%s", resp.Analysis.Score, resp.Analysis.Band)
	}

	if len(ms.scans) != 1 {
		t.Errorf("expected scan recorded, got %d", len(ms.scans))
	}
	if len(ev.published) != 1 || ev.published[0] != "scan.737628064502.scored" {
		t.Errorf("expected scored event, got %v", ev.published)
	}
}

func TestAnalyzeProductNotFound(t *testing.T) {
	router, _, ev := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/products/40063813339", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if len(ev.published) != 1 || ev.published[0] != "scan.40063813339.unknown" {
		t.Errorf("expected unknown event, got %v", ev.published)
	}
}

func TestAnalyzeProductInvalidBarcode(t *testing.T) {
	router, _, _ := setupTestRouter()

	for _, code := range []string{"1234", "not-a-barcode"} {
		req := httptest.NewRequest("GET", "/api/v1/products/"+code, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("barcode %q: expected 400, got %d", code, rec.Code)
		}
	}
}

func TestListCitations(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/citations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Citations []score.Citation `json:"citations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Citations) == 0 {
		t.Error("expected citations")
	}
}

func TestGetScan(t *testing.T) {
	router, ms, _ := setupTestRouter()

	scan := &store.Scan{Barcode: "737628064502", ProductName: "Rice Noodles", Score: 94, Band: "A"}
	_ = ms.RecordScan(context.Background(), scan)

	req := httptest.NewRequest("GET", "/api/v1/scans/"+scan.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/v1/scans/"+uuid.New().String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown scan, got %d", rec.Code)
	}
}

func TestStatsRequiresAdminToken(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/v1/stats", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsRouterHealth(t *testing.T) {
	router := NewMetricsRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/metrics", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 from /metrics, got %d", rec.Code)
	}
}
