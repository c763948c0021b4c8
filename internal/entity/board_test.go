package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	// Given: a board of side 3
	board := NewBoard(3)

	// Then: it holds six empty cells in index order
	require.Len(t, board.Cells, 6)
	for i, cell := range board.Cells {
		assert.Equal(t, i, cell.Index)
		assert.Equal(t, SeatNone, cell.Owner)
		assert.True(t, cell.Coord.OnBoard(3))
	}
}

func TestBoard_FindByCoord(t *testing.T) {
	board := NewBoard(3)

	t.Run("Finds an existing cell", func(t *testing.T) {
		cell, ok := board.FindByCoord(Coord{1, 1, 0})

		require.True(t, ok)
		assert.Equal(t, 2, cell.Index)

		cell, ok = board.FindByCoord(Coord{0, 1, 1})

		require.True(t, ok)
		assert.Equal(t, 4, cell.Index)
	})

	t.Run("Reports missing cells", func(t *testing.T) {
		_, ok := board.FindByCoord(Coord{3, 0, 0})

		assert.False(t, ok)
	})

	t.Run("Huge components do not wrap onto the board", func(t *testing.T) {
		// Given: components whose sum overflows back to size-1
		wrapped := Coord{6941261091797652072, 2742548494285908193, 8762934487625991353}
		shifted := Coord{wrapped.X, wrapped.Y + 5, wrapped.Z - 5}

		for _, c := range []Coord{wrapped, shifted} {
			// When
			_, ok := board.FindByCoord(c)

			// Then
			assert.False(t, ok, "%v", c)
			assert.False(t, board.IsEmpty(c))
			assert.ErrorIs(t, board.SetOwner(c, SeatA), ErrOutOfBoard)
		}
		assert.Len(t, board.EmptyCells(), 6)
	})
}

func TestBoard_SetOwner(t *testing.T) {
	t.Run("Marks a single cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(2)

		// When: seat A takes the apex
		err := board.SetOwner(Coord{1, 0, 0}, SeatA)

		// Then: only that cell is owned
		require.NoError(t, err)
		assert.False(t, board.IsEmpty(Coord{1, 0, 0}))
		assert.True(t, board.IsEmpty(Coord{0, 1, 0}))
		assert.Len(t, board.EmptyCells(), 2)
	})

	t.Run("Fails for a cell that does not exist", func(t *testing.T) {
		board := NewBoard(2)

		err := board.SetOwner(Coord{2, 0, 0}, SeatA)

		require.ErrorIs(t, err, ErrOutOfBoard)
	})
}

func TestBoard_Rows(t *testing.T) {
	board := NewBoard(4)

	rows := board.Rows()

	require.Len(t, rows, 4)
	for r, row := range rows {
		assert.Len(t, row, r+1)
	}
	assert.Equal(t, Coord{0, 3, 0}, rows[3][3].Coord)
}
