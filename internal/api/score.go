package api

import (
	"encoding/json"
	"net/http"

	"github.com/nutriscan/nutriscan/internal/score"
)

type ScoreHandler struct {
	engine *score.Engine
}

func NewScoreHandler(engine *score.Engine) *ScoreHandler {
	return &ScoreHandler{engine: engine}
}

type ScoreRequest struct {
	ProductName string       `json:"product_name,omitempty"`
	Nutrients   score.Record `json:"nutrients"`
}

// Score handles POST /api/v1/score: a nutrient record in, the full scoring
// payload out. Callers that already hold per-100g values (label OCR, bulk
// imports) use this instead of the barcode path.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ProductName == "" {
		req.ProductName = "This product"
	}

	res, err := h.engine.Score(req.Nutrients)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, score.BuildReport(req.ProductName, res))
}
