package entity

import "fmt"

type Cell struct {
	Index int   `json:"index" bson:"index"`
	Coord Coord `json:"coord" bson:"coord"`
	Owner Seat  `json:"owner" bson:"owner"`
}

// Board is the row-major cell storage of a triangular board. Row r holds r+1 cells.
type Board struct {
	Size  int    `json:"size" bson:"size"`
	Cells []Cell `json:"cells" bson:"cells"`
}

func NewBoard(size int) *Board {
	total := CellCount(size)
	board := &Board{
		Size:  size,
		Cells: make([]Cell, total),
	}

	for i := 0; i < total; i++ {
		// index is always in range here
		c, _ := IndexToCoord(i, size)
		board.Cells[i] = Cell{Index: i, Coord: c, Owner: SeatNone}
	}

	return board
}

func (that *Board) FindByCoord(c Coord) (*Cell, bool) {
	index, err := CoordToIndex(c, that.Size)
	if err != nil || index < 0 || index >= len(that.Cells) {
		return nil, false
	}

	return &that.Cells[index], true
}

// IsEmpty reports false for cells that do not exist.
func (that *Board) IsEmpty(c Coord) bool {
	cell, ok := that.FindByCoord(c)
	return ok && cell.Owner == SeatNone
}

// SetOwner marks a single cell. The caller guarantees the cell is empty.
func (that *Board) SetOwner(c Coord, seat Seat) error {
	cell, ok := that.FindByCoord(c)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutOfBoard, c)
	}

	cell.Owner = seat

	return nil
}

func (that *Board) EmptyCells() []Coord {
	empty := make([]Coord, 0, len(that.Cells))
	for _, cell := range that.Cells {
		if cell.Owner == SeatNone {
			empty = append(empty, cell.Coord)
		}
	}

	return empty
}

func (that *Board) IsFull() bool {
	for _, cell := range that.Cells {
		if cell.Owner == SeatNone {
			return false
		}
	}

	return true
}

// Rows splits the cells by row, apex first.
func (that *Board) Rows() [][]Cell {
	rows := make([][]Cell, 0, that.Size)
	for r := 0; r < that.Size; r++ {
		start := triangular(r)
		end := start + r + 1
		if end > len(that.Cells) {
			break
		}
		rows = append(rows, that.Cells[start:end])
	}

	return rows
}
