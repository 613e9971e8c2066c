package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// analysisSuggestions are the canned questions offered to the UI shell as
// conversation starters. Each one exercises a different intent category.
var analysisSuggestions = []string{
	"Qual estado com maior inadimplência e quais os valores devidos?",
	"Qual tipo de cliente apresenta o maior número de operações?",
	"Em qual modalidade existe maior inadimplência?",
	"Compare a inadimplência entre PF e PJ",
	"Qual ocupação entre PF possui maior inadimplência?",
	"Qual o principal porte de cliente com inadimplência entre PF?",
	"Qual região apresenta a maior taxa de inadimplência?",
	"Quais os setores econômicos com maior volume de inadimplência?",
	"Qual a projeção de inadimplência para os próximos 90 dias?",
	"Qual o índice de ativo problemático por tipo de cliente?",
	"Quais as modalidades de crédito com maior risco de inadimplência?",
}

// SuggestionsResponse for GET /api/suggestions
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestionsHandler serves the analysis suggestion list.
type SuggestionsHandler struct {
	logger *zap.Logger
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(logger *zap.Logger) *SuggestionsHandler {
	return &SuggestionsHandler{logger: logger}
}

// RegisterRoutes registers the suggestions route on the given mux.
func (h *SuggestionsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/suggestions", h.List)
}

// List handles GET /api/suggestions.
func (h *SuggestionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: analysisSuggestions}); err != nil {
		h.logger.Error("Failed to encode suggestions response", zap.Error(err))
	}
}
