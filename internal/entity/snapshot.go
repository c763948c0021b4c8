package entity

import "time"

type CellView struct {
	Position string `json:"position"`
	Player   Seat   `json:"player"`
}

// Snapshot is the read-only view handed to presentation clients.
type Snapshot struct {
	GameID    string       `json:"gameId"`
	GameMode  string       `json:"gameMode"`
	BotMode   string       `json:"botMode,omitempty"`
	BoardSize int          `json:"boardSize"`
	Board     []CellView   `json:"board"`
	Players   []Player     `json:"players"`
	Moves     []MoveRecord `json:"moves"`
	Turn      Seat         `json:"turn"`
	Status    string       `json:"status"`
	Winner    string       `json:"winner,omitempty"`
}

func (that *Match) Snapshot() *Snapshot {
	board := make([]CellView, len(that.Board.Cells))
	for i, cell := range that.Board.Cells {
		board[i] = CellView{Position: cell.Coord.String(), Player: cell.Owner}
	}

	moves := make([]MoveRecord, len(that.Moves))
	copy(moves, that.Moves)

	return &Snapshot{
		GameID:    that.ID,
		GameMode:  that.GameMode,
		BotMode:   that.BotMode,
		BoardSize: that.BoardSize,
		Board:     board,
		Players:   that.players(),
		Moves:     moves,
		Turn:      that.CurrentTurn,
		Status:    that.Status,
		Winner:    that.Winner,
	}
}

func (that *Match) players() []Player {
	players := make([]Player, 0, len(that.Players))
	for _, p := range that.Players {
		players = append(players, *p)
	}

	return players
}

// MatchRecord is the finalized match emitted for durable storage.
type MatchRecord struct {
	MatchID   string       `json:"matchId" bson:"match_id"`
	UserID    string       `json:"userId" bson:"user_id"`
	GameMode  string       `json:"gameMode" bson:"game_mode"`
	BotMode   string       `json:"botMode,omitempty" bson:"bot_mode,omitempty"`
	BoardSize int          `json:"boardSize" bson:"board_size"`
	Players   []Player     `json:"players" bson:"players"`
	Moves     []MoveRecord `json:"moves" bson:"moves"`
	Status    string       `json:"status" bson:"status"`
	Winner    string       `json:"winner" bson:"winner"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	EndedAt   *time.Time   `json:"endedAt,omitempty" bson:"ended_at,omitempty"`
}

func (that *Match) Record() *MatchRecord {
	moves := make([]MoveRecord, len(that.Moves))
	copy(moves, that.Moves)

	return &MatchRecord{
		MatchID:   that.ID,
		UserID:    that.UserID,
		GameMode:  that.GameMode,
		BotMode:   that.BotMode,
		BoardSize: that.BoardSize,
		Players:   that.players(),
		Moves:     moves,
		Status:    that.Status,
		Winner:    that.Result().Winner,
		CreatedAt: that.CreatedAt,
		EndedAt:   that.EndedAt,
	}
}
