package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/apperror"
	"github.com/rocketscienceinc/ygame-backend/internal/entity"
	"github.com/rocketscienceinc/ygame-backend/internal/usecase"
)

const maxBodySize = 1 << 16

type matchHandler struct {
	logger *zap.Logger
	uMatch matchUseCase
}

type moveRequest struct {
	UserID string           `json:"userId"`
	Move   entity.MoveInput `json:"move"`
}

type endRequest struct {
	GameID string `json:"gameId"`
	UserID string `json:"userId"`
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Position string `json:"position"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *matchHandler) botModes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, that.uMatch.BotModes())
}

func (that *matchHandler) start(w http.ResponseWriter, r *http.Request) {
	var req usecase.StartRequest
	if !that.decode(w, r, &req) {
		return
	}

	snapshot, err := that.uMatch.Start(r.Context(), req)
	if err != nil {
		that.writeError(w, "start", err)
		return
	}

	writeJSON(w, http.StatusCreated, snapshot)
}

func (that *matchHandler) state(w http.ResponseWriter, r *http.Request) {
	snapshot, err := that.uMatch.GetState(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, "state", err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (that *matchHandler) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decode(w, r, &req) {
		return
	}

	snapshot, err := that.uMatch.MakeMove(r.Context(), chi.URLParam(r, "gameID"), req.UserID, req.Move)
	if err != nil {
		that.writeError(w, "move", err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (that *matchHandler) validateMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !that.decode(w, r, &req) {
		return
	}

	c, err := that.uMatch.ValidateMove(r.Context(), chi.URLParam(r, "gameID"), req.UserID, req.Move)
	if err != nil {
		that.writeError(w, "validateMove", err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Position: c.String()})
}

func (that *matchHandler) end(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if !that.decode(w, r, &req) {
		return
	}

	if req.GameID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "gameId is required"})
		return
	}

	result, err := that.uMatch.End(r.Context(), req.GameID, req.UserID)
	if err != nil {
		that.writeError(w, "end", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (that *matchHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}

	return true
}

func (that *matchHandler) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", zap.String("method", method), zap.Error(err))
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrWrongTurn),
		errors.Is(err, apperror.ErrMatchFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotInMatch):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidMoveFormat),
		errors.Is(err, apperror.ErrBotModeUnknown),
		errors.Is(err, apperror.ErrGameModeUnknown),
		errors.Is(err, apperror.ErrInvalidBoardSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
