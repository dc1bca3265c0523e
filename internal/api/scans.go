package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nutriscan/nutriscan/internal/store"
)

type ScansHandler struct {
	store store.Store
}

func NewScansHandler(s store.Store) *ScansHandler {
	return &ScansHandler{store: s}
}

// List handles GET /api/v1/scans with optional barcode, band, limit and
// offset query parameters.
func (h *ScansHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "scan history disabled"})
		return
	}

	filter := store.ScanFilter{
		Barcode: r.URL.Query().Get("barcode"),
		Band:    r.URL.Query().Get("band"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	scans, err := h.store.ListScans(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if scans == nil {
		scans = []*store.Scan{}
	}
	writeJSON(w, http.StatusOK, scans)
}

// Get handles GET /api/v1/scans/{id}.
func (h *ScansHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "scan history disabled"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	scan, err := h.store.GetScan(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if scan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scan not found"})
		return
	}
	writeJSON(w, http.StatusOK, scan)
}
