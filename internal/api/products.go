package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nutriscan/nutriscan/internal/barcode"
	"github.com/nutriscan/nutriscan/internal/events"
	"github.com/nutriscan/nutriscan/internal/openfoodfacts"
	"github.com/nutriscan/nutriscan/internal/score"
	"github.com/nutriscan/nutriscan/internal/store"
)

type ProductsHandler struct {
	engine   *score.Engine
	products openfoodfacts.Client
	store    store.Store
	events   events.Client
	logger   *slog.Logger
}

func NewProductsHandler(engine *score.Engine, products openfoodfacts.Client, s store.Store, ev events.Client, logger *slog.Logger) *ProductsHandler {
	return &ProductsHandler{
		engine:   engine,
		products: products,
		store:    s,
		events:   ev,
		logger:   logger,
	}
}

// AnalysisResponse bundles the fetched product with its scoring report —
// the complete payload a UI needs to render one scan.
type AnalysisResponse struct {
	Product  *openfoodfacts.Product `json:"product"`
	Analysis *score.Report          `json:"analysis"`
}

// Analyze handles GET /api/v1/products/{barcode}: validate the barcode,
// fetch the product, score it, record history, publish the scan event.
func (h *ProductsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	code := barcode.Normalize(chi.URLParam(r, "barcode"))
	if err := barcode.Validate(code); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid barcode: must be 8-13 digits"})
		return
	}

	start := time.Now()
	product, err := h.products.GetProduct(r.Context(), code)
	productFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, openfoodfacts.ErrNotFound) {
			productFetches.WithLabelValues("not_found").Inc()
			h.publishUnknown(code)
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
			return
		}
		productFetches.WithLabelValues("error").Inc()
		h.logger.Error("product fetch failed", "barcode", code, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "product database unavailable"})
		return
	}
	productFetches.WithLabelValues("ok").Inc()

	res, err := h.engine.Score(product.Nutrients)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	report := score.BuildReport(product.Name, res)
	scansScored.WithLabelValues(report.Band).Inc()

	h.recordScan(r, product, report)
	h.publishScored(product, report)

	writeJSON(w, http.StatusOK, AnalysisResponse{Product: product, Analysis: report})
}

// recordScan appends to history; failures are logged, never surfaced.
func (h *ProductsHandler) recordScan(r *http.Request, product *openfoodfacts.Product, report *score.Report) {
	if h.store == nil {
		return
	}
	scan := &store.Scan{
		Barcode:     product.Barcode,
		ProductName: product.Name,
		Brands:      product.Brands,
		Score:       report.Score,
		Band:        report.Band,
		GoodPoints:  report.GoodPoints,
		Concerns:    report.Concerns,
		Explanation: report.Explanation,
	}
	if err := h.store.RecordScan(r.Context(), scan); err != nil {
		h.logger.Error("failed to record scan", "barcode", product.Barcode, "error", err)
	}
}

func (h *ProductsHandler) publishScored(product *openfoodfacts.Product, report *score.Report) {
	if h.events == nil {
		return
	}
	err := h.events.Publish(events.SubjectScanScored(product.Barcode), events.ScanScoredEvent{
		Barcode:     product.Barcode,
		ProductName: product.Name,
		Score:       report.Score,
		Band:        report.Band,
		Concerns:    len(report.Concerns),
		GoodPoints:  len(report.GoodPoints),
		ScoredAt:    time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("failed to publish scan event", "barcode", product.Barcode, "error", err)
	}
}

func (h *ProductsHandler) publishUnknown(code string) {
	if h.events == nil {
		return
	}
	err := h.events.Publish(events.SubjectScanUnknown(code), events.ScanUnknownEvent{
		Barcode:   code,
		ScannedAt: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("failed to publish unknown-scan event", "barcode", code, "error", err)
	}
}
