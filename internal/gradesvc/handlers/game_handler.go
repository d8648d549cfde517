package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avvvet/pickem-services/internal/gradesvc/grading"
	"github.com/avvvet/pickem-services/internal/gradesvc/service"
	"github.com/avvvet/pickem-services/internal/gradesvc/store"
	"github.com/go-chi/chi"
)

type finalizeRequest struct {
	HomeScore *int64 `json:"home_score"`
	AwayScore *int64 `json:"away_score"`
}

// FinalizeGameHandler records a real final score and grades every pick on the
// game. Scores must be present, integral and non-negative; anything else is
// rejected before the settlement service runs.
func (h *Handler) FinalizeGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid game id", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	var req finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Message: "invalid request body", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	if req.HomeScore == nil || req.AwayScore == nil || *req.HomeScore < 0 || *req.AwayScore < 0 {
		h.CreateResponse(w, Response{Message: "home_score and away_score must be non-negative integers", Code: http.StatusBadRequest})
		return
	}

	res, err := h.settlementService.FinalizeGame(r.Context(), gameID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.settlementError(w, err)
		return
	}

	h.broker.PublishGameSettled(res)
	h.CreateResponse(w, Response{Message: "game settled", Code: http.StatusOK, Data: res})
}

// ReevaluateGameHandler re-grades every pick from the stored final score. The
// repair path for a score that was entered wrong and then corrected.
func (h *Handler) ReevaluateGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid game id", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	res, err := h.settlementService.ReevaluateGamePicks(r.Context(), gameID)
	if err != nil {
		h.settlementError(w, err)
		return
	}

	h.broker.PublishGameSettled(res)
	h.CreateResponse(w, Response{Message: "game re-evaluated", Code: http.StatusOK, Data: res})
}

// ForceFinalizeGameHandler is the operator escape hatch: finalize at a
// placeholder 0-0 when no real score can be obtained.
func (h *Handler) ForceFinalizeGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid game id", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	res, err := h.settlementService.ForceFinalizeGame(r.Context(), gameID)
	if err != nil {
		h.settlementError(w, err)
		return
	}

	h.broker.PublishGameSettled(res)
	h.CreateResponse(w, Response{Message: "game force-finalized", Code: http.StatusOK, Data: res})
}

func (h *Handler) SeasonStandingsHandler(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		h.CreateResponse(w, Response{Message: "season query parameter is required", Code: http.StatusBadRequest})
		return
	}

	records, err := h.statsService.ListSeasonStandings(r.Context(), season)
	if err != nil {
		h.settlementError(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "season standings", Code: http.StatusOK, Data: records})
}

func (h *Handler) UserRecordHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid user id", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	season, err := strconv.Atoi(r.URL.Query().Get("season"))
	if err != nil {
		h.CreateResponse(w, Response{Message: "season query parameter is required", Code: http.StatusBadRequest})
		return
	}

	record, err := h.statsService.GetUserRecord(r.Context(), userID, season)
	if err != nil {
		h.settlementError(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "user record", Code: http.StatusOK, Data: record})
}

// settlementError maps service errors onto HTTP statuses. A pick with no
// spread is a data integrity defect, not caller input, hence 422.
func (h *Handler) settlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, service.ErrScoreNotRecorded):
		h.CreateResponse(w, Response{Message: "not found", Code: http.StatusNotFound, Error: err.Error()})
	case errors.Is(err, service.ErrInvalidScore), errors.Is(err, service.ErrInvalidSeason):
		h.CreateResponse(w, Response{Message: "invalid input", Code: http.StatusBadRequest, Error: err.Error()})
	case errors.Is(err, grading.ErrMissingSpread), errors.Is(err, grading.ErrUnknownSide):
		h.CreateResponse(w, Response{Message: "pick data defect", Code: http.StatusUnprocessableEntity, Error: err.Error()})
	case errors.Is(err, store.ErrScoreChanged):
		h.CreateResponse(w, Response{Message: "settlement conflict, retry", Code: http.StatusConflict, Error: err.Error()})
	default:
		h.CreateResponse(w, Response{Message: "internal error", Code: http.StatusInternalServerError, Error: err.Error()})
	}
}
