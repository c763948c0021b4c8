package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/ygame-backend/internal/apperror"
)

const (
	StatusActive   = "active"
	StatusFinished = "finished"

	WinnerDraw = "draw"
)

const (
	ModeVsBot       = "vsBot"
	ModeMultiplayer = "multiplayer"
)

type MoveRecord struct {
	Seat      Seat      `json:"player" bson:"player"`
	Position  string    `json:"position" bson:"position"`
	Coord     Coord     `json:"coord" bson:"coord"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// SeatAssignment describes who holds seat B.
type SeatAssignment struct {
	GameMode   string
	BotMode    string
	OpponentID string
}

type Match struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	GameMode    string       `json:"gameMode"`
	BotMode     string       `json:"botMode,omitempty"`
	BoardSize   int          `json:"boardSize"`
	Board       *Board       `json:"board"`
	Players     [2]*Player   `json:"players"`
	CurrentTurn Seat         `json:"turn"`
	Moves       []MoveRecord `json:"moves"`
	Status      string       `json:"status"`
	Winner      string       `json:"winner,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	EndedAt     *time.Time   `json:"endedAt,omitempty"`
}

// NewMatch - seat A goes to the initiating user and moves first.
func NewMatch(id, userID string, boardSize int, seats SeatAssignment, now time.Time) *Match {
	opponent := &Player{Seat: SeatB, UserID: seats.OpponentID, Role: RoleHuman}
	botMode := ""

	if seats.GameMode == ModeVsBot {
		opponent.UserID = BotUserID
		opponent.Role = RoleEngine
		botMode = seats.BotMode
	} else if opponent.UserID == "" {
		opponent.UserID = userID
	}

	return &Match{
		ID:        id,
		UserID:    userID,
		GameMode:  seats.GameMode,
		BotMode:   botMode,
		BoardSize: boardSize,
		Board:     NewBoard(boardSize),
		Players: [2]*Player{
			{Seat: SeatA, UserID: userID, Role: RoleHuman},
			opponent,
		},
		CurrentTurn: SeatA,
		Moves:       []MoveRecord{},
		Status:      StatusActive,
		CreatedAt:   now,
	}
}

func (that *Match) Player(seat Seat) *Player {
	switch seat {
	case SeatA:
		return that.Players[0]
	case SeatB:
		return that.Players[1]
	default:
		return nil
	}
}

// SeatOf - resolves the seat a user acts for. A user holding both seats acts for the seat to move.
func (that *Match) SeatOf(userID string) (Seat, bool) {
	if current := that.Player(that.CurrentTurn); current != nil && current.UserID == userID {
		return that.CurrentTurn, true
	}

	for _, p := range that.Players {
		if p.UserID == userID {
			return p.Seat, true
		}
	}

	return SeatNone, false
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

// IsEngineTurn reports whether the engine seat is due to move.
func (that *Match) IsEngineTurn() bool {
	player := that.Player(that.CurrentTurn)
	return !that.IsFinished() && player != nil && player.IsEngine()
}

// ValidateMove - runs every check of ApplyMove without touching state.
func (that *Match) ValidateMove(seat Seat, in MoveInput) (Coord, error) {
	if that.IsFinished() {
		return Coord{}, apperror.ErrMatchFinished
	}

	if seat != that.CurrentTurn {
		return Coord{}, apperror.ErrWrongTurn
	}

	c, err := NormalizeMove(in, that.BoardSize)
	if err != nil {
		return Coord{}, err
	}

	if !that.Board.IsEmpty(c) {
		return Coord{}, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, c)
	}

	return c, nil
}

// ApplyMove - validates and applies a move, flips the turn and re-evaluates the result.
// The turn flips even when the move ends the match.
func (that *Match) ApplyMove(seat Seat, in MoveInput, now time.Time) (MoveRecord, error) {
	c, err := that.ValidateMove(seat, in)
	if err != nil {
		return MoveRecord{}, err
	}

	if err = that.Board.SetOwner(c, seat); err != nil {
		return MoveRecord{}, fmt.Errorf("%w: %w", apperror.ErrInvalidMoveFormat, err)
	}

	record := MoveRecord{
		Seat:      seat,
		Position:  c.String(),
		Coord:     c,
		Timestamp: now,
	}
	that.Moves = append(that.Moves, record)
	that.CurrentTurn = seat.Other()

	that.updateResult(now)

	return record, nil
}

func (that *Match) updateResult(now time.Time) {
	switch winner := EvaluateWin(that.Board); winner {
	case SeatA, SeatB:
		that.seal(string(winner), now)
	default:
		// unreachable with a correct predicate, a full Y board always has a winner
		if that.Board.IsFull() {
			that.seal(WinnerDraw, now)
		}
	}
}

// seal moves the match to finished exactly once.
func (that *Match) seal(winner string, now time.Time) {
	if that.IsFinished() {
		return
	}

	that.Status = StatusFinished
	that.Winner = winner
	ended := now
	that.EndedAt = &ended

	if p := that.Player(Seat(winner)); p != nil {
		p.Score++
	}
}

type Result struct {
	Winner     string `json:"winner"`
	Moves      int    `json:"moves"`
	DurationMs int64  `json:"durationMs"`
}

// Finalize - ends the match if still active and reports the sealed result.
// It returns true only on the call that performed the transition.
func (that *Match) Finalize(now time.Time) (Result, bool) {
	sealedNow := !that.IsFinished()
	if sealedNow {
		that.seal(WinnerDraw, now)
	}

	return that.Result(), sealedNow
}

func (that *Match) Result() Result {
	winner := that.Winner
	if winner == "" {
		winner = WinnerDraw
	}

	var duration time.Duration
	if that.EndedAt != nil {
		duration = that.EndedAt.Sub(that.CreatedAt)
	}

	return Result{
		Winner:     winner,
		Moves:      len(that.Moves),
		DurationMs: duration.Milliseconds(),
	}
}
