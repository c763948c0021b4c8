package websocket

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/usecase"
)

func (that *Server) decode(msg *Message) (*Payload, bool) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return &payload, true
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		that.logger.Warn("failed to unmarshal payload", zap.String("action", msg.Action), zap.Error(err))
		return nil, false
	}

	return &payload, true
}

func errorPayload(err error) ResponsePayload {
	return ResponsePayload{Error: err.Error()}
}

var invalidPayload = ResponsePayload{Error: "invalid payload"}

func (that *Server) handleStart(ctx context.Context, msg *Message) ResponsePayload {
	payload, ok := that.decode(msg)
	if !ok {
		return invalidPayload
	}

	snapshot, err := that.uMatch.Start(ctx, usecase.StartRequest{
		UserID:     payload.UserID,
		GameMode:   payload.GameMode,
		BotMode:    payload.BotMode,
		BoardSize:  payload.BoardSize,
		OpponentID: payload.OpponentID,
	})
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{Game: snapshot}
}

func (that *Server) handleMove(ctx context.Context, msg *Message) ResponsePayload {
	payload, ok := that.decode(msg)
	if !ok {
		return invalidPayload
	}

	snapshot, err := that.uMatch.MakeMove(ctx, payload.GameID, payload.UserID, payload.Move)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{Game: snapshot}
}

func (that *Server) handleValidate(ctx context.Context, msg *Message) ResponsePayload {
	payload, ok := that.decode(msg)
	if !ok {
		return invalidPayload
	}

	c, err := that.uMatch.ValidateMove(ctx, payload.GameID, payload.UserID, payload.Move)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{Position: c.String()}
}

func (that *Server) handleState(ctx context.Context, msg *Message) ResponsePayload {
	payload, ok := that.decode(msg)
	if !ok {
		return invalidPayload
	}

	snapshot, err := that.uMatch.GetState(ctx, payload.GameID)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{Game: snapshot}
}

func (that *Server) handleEnd(ctx context.Context, msg *Message) ResponsePayload {
	payload, ok := that.decode(msg)
	if !ok {
		return invalidPayload
	}

	result, err := that.uMatch.End(ctx, payload.GameID, payload.UserID)
	if err != nil {
		return errorPayload(err)
	}

	return ResponsePayload{Result: result}
}

func (that *Server) handleBotModes(_ context.Context, _ *Message) ResponsePayload {
	modes := that.uMatch.BotModes()
	return ResponsePayload{BotModes: &modes}
}
