package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Appraise/internal/fuzzy"
	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
)

type ExplainHandler struct {
	scorer *scoring.Scorer
}

func NewExplainHandler(sc *scoring.Scorer) *ExplainHandler {
	return &ExplainHandler{scorer: sc}
}

type centroidView struct {
	Category fuzzy.Category `json:"category"`
	Centroid float64        `json:"centroid"`
}

// Model describes the inference model: input shapes, the rule bank, output
// centroids and the display bands.
// GET /api/v1/scoring/model
func (h *ExplainHandler) Model(w http.ResponseWriter, r *http.Request) {
	centroids := make([]centroidView, 0, len(fuzzy.Categories))
	for _, c := range fuzzy.Categories {
		centroids = append(centroids, centroidView{Category: c, Centroid: fuzzy.Centroid(c)})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"input_shapes":   fuzzy.Shapes(),
		"rules":          fuzzy.Rules(),
		"centroids":      centroids,
		"fallback_score": fuzzy.FallbackScore,
		"bands":          scoring.Bands(),
		"input_policy":   h.scorer.Policy(),
	})
}
