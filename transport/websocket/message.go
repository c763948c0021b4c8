package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
	"github.com/rocketscienceinc/ygame-backend/internal/usecase"
)

const (
	actionStart    = "game:start"
	actionMove     = "game:move"
	actionValidate = "game:validate"
	actionState    = "game:state"
	actionEnd      = "game:end"
	actionBotModes = "game:bot-modes"
	actionError    = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID     string           `json:"gameId,omitempty"`
	UserID     string           `json:"userId,omitempty"`
	GameMode   string           `json:"gameMode,omitempty"`
	BotMode    string           `json:"botMode,omitempty"`
	BoardSize  int              `json:"boardSize,omitempty"`
	OpponentID string           `json:"opponentId,omitempty"`
	Move       entity.MoveInput `json:"move"`
}

type ResponsePayload struct {
	Game     *entity.Snapshot   `json:"game,omitempty"`
	Result   *usecase.EndResult `json:"result,omitempty"`
	BotModes *usecase.BotModes  `json:"botModes,omitempty"`
	Position string             `json:"position,omitempty"`
	Error    string             `json:"error,omitempty"`
}
