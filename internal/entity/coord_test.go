package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexToCoord(t *testing.T) {
	t.Run("Round trip holds for every cell", func(t *testing.T) {
		for size := 1; size <= 60; size++ {
			for i := 0; i < CellCount(size); i++ {
				// When: converting an index to a coordinate and back
				c, err := IndexToCoord(i, size)
				require.NoError(t, err)

				index, err := CoordToIndex(c, size)
				require.NoError(t, err)

				// Then: the index is recovered and the coordinate is valid
				require.Equal(t, i, index, "size %d index %d", size, i)
				require.Equal(t, size-1, c.X+c.Y+c.Z)
				require.GreaterOrEqual(t, c.X, 0)
				require.GreaterOrEqual(t, c.Y, 0)
				require.GreaterOrEqual(t, c.Z, 0)
			}
		}
	})

	t.Run("Size 2 maps apex first", func(t *testing.T) {
		// Given: a board of side 2, column c of a row has y == c
		expected := []Coord{{1, 0, 0}, {0, 0, 1}, {0, 1, 0}}

		for i, want := range expected {
			// When: converting each index
			got, err := IndexToCoord(i, 2)

			// Then: it matches the row-major layout
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Large indices land on the right row", func(t *testing.T) {
		// Given: the last cell of a very large board
		size := 5000
		last := CellCount(size) - 1

		// When: converting it
		c, err := IndexToCoord(last, size)

		// Then: it is the bottom-right corner
		require.NoError(t, err)
		assert.Equal(t, Coord{0, size - 1, 0}, c)
	})

	t.Run("Out of range index fails", func(t *testing.T) {
		_, err := IndexToCoord(3, 2)
		require.ErrorIs(t, err, ErrOutOfBoard)

		_, err = IndexToCoord(-1, 2)
		require.ErrorIs(t, err, ErrOutOfBoard)
	})
}

func TestCoordToIndex(t *testing.T) {
	t.Run("Rejects coordinates off the board", func(t *testing.T) {
		// When: the components do not sum to N-1
		_, err := CoordToIndex(Coord{1, 1, 1}, 2)

		// Then: ErrOutOfBoard is returned
		require.ErrorIs(t, err, ErrOutOfBoard)
	})
}

func TestCoord_String(t *testing.T) {
	assert.Equal(t, "(1,0,0)", Coord{1, 0, 0}.String())
	assert.Equal(t, "(10,2,3)", Coord{10, 2, 3}.String())
}

func TestCoord_Neighbors(t *testing.T) {
	t.Run("Interior cell has six neighbors on the board", func(t *testing.T) {
		// Given: the center of a side 4 board
		c := Coord{1, 1, 1}

		// When: listing its neighbors
		nb := c.Neighbors()

		// Then: all six are on the board
		require.Len(t, nb, 6)
		for _, n := range nb {
			assert.True(t, n.OnBoard(4), n.String())
		}
	})

	t.Run("Corner cell has two neighbors", func(t *testing.T) {
		nb := Coord{2, 0, 0}.Neighbors()

		assert.ElementsMatch(t, []Coord{{1, 1, 0}, {1, 0, 1}}, nb)
	})
}
