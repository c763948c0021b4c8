package engine

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

var errMalformedResponse = errors.New("malformed engine response")

type ResponseCell struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Z      int `json:"z"`
	Player int `json:"player"`
}

func (that ResponseCell) Coord() entity.Coord {
	return entity.Coord{X: that.X, Y: that.Y, Z: that.Z}
}

// Response is the engine reply. Coords carries a single chosen cell, Board the occupied cells after the move.
type Response struct {
	Coords *entity.Coord  `json:"coords,omitempty"`
	Board  []ResponseCell `json:"board,omitempty"`
	Turn   *int           `json:"turn,omitempty"`
	Status string         `json:"status,omitempty"`
	Winner *int           `json:"winner,omitempty"`
}

// pickMove - extracts the single new cell for seat. Entries pointing at owned cells are ignored.
func (that *Response) pickMove(m *entity.Match, seat entity.Seat) (entity.Coord, error) {
	if that.Coords != nil {
		c, err := m.ValidateMove(seat, entity.MoveFromCoord(*that.Coords))
		if err != nil {
			return entity.Coord{}, fmt.Errorf("%w: coords: %w", errMalformedResponse, err)
		}

		return c, nil
	}

	player := seatIndex(seat)
	for _, cell := range that.Board {
		if cell.Player != player {
			continue
		}

		if c, err := m.ValidateMove(seat, entity.MoveFromCoord(cell.Coord())); err == nil {
			return c, nil
		}
	}

	return entity.Coord{}, fmt.Errorf("%w: no new cell for player %d", errMalformedResponse, player)
}
