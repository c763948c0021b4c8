package engine

import (
	"strings"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

// engine player indices, seat A is player 0.
const (
	playerA = 0
	playerB = 1
)

// Notation is the board payload understood by the move engine.
type Notation struct {
	Size    int      `json:"size"`
	Turn    int      `json:"turn"`
	Players []string `json:"players"`
	Layout  string   `json:"layout"`
}

// EncodeBoard - serializes the match board, rows top to bottom joined by "/".
func EncodeBoard(m *entity.Match) Notation {
	rows := m.Board.Rows()
	encoded := make([]string, len(rows))

	for r, row := range rows {
		var sb strings.Builder
		sb.Grow(len(row))
		for _, cell := range row {
			sb.WriteByte(cell.Owner.Letter())
		}
		encoded[r] = sb.String()
	}

	return Notation{
		Size:    m.BoardSize,
		Turn:    seatIndex(m.CurrentTurn),
		Players: []string{string(entity.SeatA.Letter()), string(entity.SeatB.Letter())},
		Layout:  strings.Join(encoded, "/"),
	}
}

func seatIndex(seat entity.Seat) int {
	if seat == entity.SeatA {
		return playerA
	}

	return playerB
}
