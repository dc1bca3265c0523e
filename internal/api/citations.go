package api

import (
	"net/http"

	"github.com/nutriscan/nutriscan/internal/score"
)

type CitationsHandler struct {
	registry *score.Registry
}

func NewCitationsHandler(registry *score.Registry) *CitationsHandler {
	return &CitationsHandler{registry: registry}
}

// List handles GET /api/v1/citations: every guideline source the scoring
// system draws on, for the UI "sources" panel.
func (h *CitationsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"citations": h.registry.AllCitations(),
	})
}
