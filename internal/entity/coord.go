package entity

import (
	"errors"
	"fmt"
	"math"
)

var ErrOutOfBoard = errors.New("coordinate is outside the board")

// Coord is a trilinear cell address on a board of side N: X+Y+Z == N-1.
type Coord struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	Z int `json:"z" bson:"z"`
}

// String returns the wire form "(x,y,z)".
func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", that.X, that.Y, that.Z)
}

// OnBoard reports whether the coordinate addresses a cell of a board of side size.
// Components are bounded before summing so huge values cannot wrap around.
func (that Coord) OnBoard(size int) bool {
	if size <= 0 {
		return false
	}

	for _, v := range [3]int{that.X, that.Y, that.Z} {
		if v < 0 || v >= size {
			return false
		}
	}

	return that.X+that.Y+that.Z == size-1
}

// Neighbors returns the up to six adjacent cells. Every returned coordinate keeps the same component sum.
func (that Coord) Neighbors() []Coord {
	nb := make([]Coord, 0, 6)
	x, y, z := that.X, that.Y, that.Z

	if x > 0 {
		nb = append(nb, Coord{x - 1, y + 1, z}, Coord{x - 1, y, z + 1})
	}
	if y > 0 {
		nb = append(nb, Coord{x + 1, y - 1, z}, Coord{x, y - 1, z + 1})
	}
	if z > 0 {
		nb = append(nb, Coord{x + 1, y, z - 1}, Coord{x, y + 1, z - 1})
	}

	return nb
}

func (that Coord) TouchesSideA() bool { return that.X == 0 }
func (that Coord) TouchesSideB() bool { return that.Y == 0 }
func (that Coord) TouchesSideC() bool { return that.Z == 0 }

// CellCount - number of cells on a board of side size.
func CellCount(size int) int {
	return triangular(size)
}

func triangular(n int) int {
	return n * (n + 1) / 2
}

// IndexToCoord - converts a row-major storage index to its trilinear coordinate.
func IndexToCoord(index, size int) (Coord, error) {
	if size < 1 || index < 0 || index >= CellCount(size) {
		return Coord{}, fmt.Errorf("%w: index %d on size %d", ErrOutOfBoard, index, size)
	}

	row := int((math.Sqrt(float64(8*index+1)) - 1) / 2)

	// the float estimate can land one row off for large indices
	for row > 0 && triangular(row) > index {
		row--
	}
	for triangular(row+1) <= index {
		row++
	}

	col := index - triangular(row)
	x := size - 1 - row
	y := col

	return Coord{X: x, Y: y, Z: size - 1 - x - y}, nil
}

// CoordToIndex - inverse of IndexToCoord.
func CoordToIndex(c Coord, size int) (int, error) {
	if !c.OnBoard(size) {
		return 0, fmt.Errorf("%w: %s on size %d", ErrOutOfBoard, c, size)
	}

	row := size - 1 - c.X

	return triangular(row) + c.Y, nil
}
