package apperror

import "errors"

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchFinished     = errors.New("match is already finished")
	ErrWrongTurn         = errors.New("it's not your turn")
	ErrInvalidMoveFormat = errors.New("invalid move format")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrNotInMatch        = errors.New("user is not seated in this match")

	ErrEngineUnavailable = errors.New("move engine unavailable")

	ErrBotModeUnknown   = errors.New("unknown bot mode")
	ErrGameModeUnknown  = errors.New("unknown game mode")
	ErrInvalidBoardSize = errors.New("invalid board size")
)
