package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"reserve-assistant/models"
	"reserve-assistant/models/apperr"
	"reserve-assistant/models/shop"
	"reserve-assistant/util"
)

const SESSION_ID_PATH_VAR = "session_id"

// MAX_REQUEST_BODY_BYTES caps the search request body.
const MAX_REQUEST_BODY_BYTES = 1 << 16

// SearchRunner is the search pipeline as seen by the HTTP layer.
type SearchRunner interface {
	NewSearch(ctx context.Context, req models.SearchRequest) (*models.SearchSession, error)
	NextPage(ctx context.Context, sessionID string) (*models.SearchSession, error)
	GetSession(sessionID string) (*models.SearchSession, error)
}

// SearchResponse is returned by every search endpoint.
type SearchResponse struct {
	SessionID    string              `json:"session_id"`
	Status       string              `json:"status"`
	Message      string              `json:"message,omitempty"`
	Start        int                 `json:"start"`
	PagesFetched int                 `json:"pages_fetched"`
	TargetDate   string              `json:"target_date"`
	TargetTime   string              `json:"target_time"`
	Venues       []shop.EnrichedShop `json:"venues"`
}

// CatalogResponse lists the choices a search form offers.
type CatalogResponse struct {
	Prefectures []string              `json:"prefectures"`
	Genres      []string              `json:"genres"`
	Budgets     []models.BudgetOption `json:"budgets"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchHandler struct {
	searchService SearchRunner
	logger        arbor.ILogger
}

func NewSearchHandler(searchService SearchRunner, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{searchService: searchService, logger: logger}
}

// NewSearch handles POST /v1/search
func (h *SearchHandler) NewSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MAX_REQUEST_BODY_BYTES))
	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	session, err := h.searchService.NewSearch(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSearchResponse(session))
}

// NextPage handles POST /v1/search/{session_id}/next
func (h *SearchHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	session, err := h.searchService.NextPage(r.Context(), mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSearchResponse(session))
}

// GetSession handles GET /v1/search/{session_id}
func (h *SearchHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.searchService.GetSession(mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSearchResponse(session))
}

// GetSessionMap handles GET /v1/search/{session_id}/map
func (h *SearchHandler) GetSessionMap(w http.ResponseWriter, r *http.Request) {
	session, err := h.searchService.GetSession(mux.Vars(r)[SESSION_ID_PATH_VAR])
	if err != nil {
		h.writeError(w, err)
		return
	}

	title := fmt.Sprintf("%s %s %s", session.Request.Keyword(), session.Request.TargetDate, session.Request.TargetTime)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderVenueMap(w, session.Results, title); err != nil {
		h.logger.Error().Err(err).Str("session_id", session.ID).Msg("[SearchHandler] Error rendering map")
	}
}

// GetBudgets handles GET /v1/budgets
func (h *SearchHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.Budgets)
}

// GetCatalog handles GET /v1/catalog
func (h *SearchHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, CatalogResponse{
		Prefectures: models.Prefectures,
		Genres:      models.Genres,
		Budgets:     models.Budgets,
	})
}

// Ping handles GET /ping
func (h *SearchHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

func toSearchResponse(s *models.SearchSession) SearchResponse {
	resp := SearchResponse{
		SessionID:    s.ID,
		Status:       s.Outcome,
		Start:        s.Start,
		PagesFetched: s.PagesFetched,
		TargetDate:   s.Request.TargetDate,
		TargetTime:   s.Request.TargetTime,
		Venues:       s.Results,
	}
	if resp.Venues == nil {
		resp.Venues = []shop.EnrichedShop{}
	}
	if s.Outcome == models.OutcomeNoResults {
		resp.Message = apperr.ErrNoQualifyingResults.Error()
	}
	return resp
}

// writeError maps the error taxonomy onto status codes. Unexpected errors are
// logged and reported without detail.
func (h *SearchHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidRequest):
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrSessionNotFound):
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrConfigurationMissing):
		h.writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error().Err(err).Msg("[SearchHandler] Search failed")
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: apperr.ErrUnexpected.Error()})
	}
}

func (h *SearchHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn().Err(err).Msg("[SearchHandler] Error encoding response")
	}
}
