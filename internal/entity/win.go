package entity

const (
	sideA = 1 << iota
	sideB
	sideC

	allSides = sideA | sideB | sideC
)

type unionFind struct {
	parent []int
	rank   []int
	sides  []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
		sides:  make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}

	return uf
}

func (that *unionFind) find(i int) int {
	for that.parent[i] != i {
		that.parent[i] = that.parent[that.parent[i]]
		i = that.parent[i]
	}

	return i
}

func (that *unionFind) union(a, b int) {
	ra, rb := that.find(a), that.find(b)
	if ra == rb {
		return
	}

	if that.rank[ra] < that.rank[rb] {
		ra, rb = rb, ra
	}

	that.parent[rb] = ra
	that.sides[ra] |= that.sides[rb]

	if that.rank[ra] == that.rank[rb] {
		that.rank[ra]++
	}
}

func sidesOf(c Coord) int {
	mask := 0
	if c.TouchesSideA() {
		mask |= sideA
	}
	if c.TouchesSideB() {
		mask |= sideB
	}
	if c.TouchesSideC() {
		mask |= sideC
	}

	return mask
}

// EvaluateWin - returns the seat whose connected group touches all three sides, or SeatNone.
func EvaluateWin(board *Board) Seat {
	for _, seat := range []Seat{SeatA, SeatB} {
		if connectsAllSides(board, seat) {
			return seat
		}
	}

	return SeatNone
}

func connectsAllSides(board *Board, seat Seat) bool {
	uf := newUnionFind(len(board.Cells))

	for _, cell := range board.Cells {
		if cell.Owner == seat {
			uf.sides[cell.Index] = sidesOf(cell.Coord)
		}
	}

	for _, cell := range board.Cells {
		if cell.Owner != seat {
			continue
		}

		for _, nb := range cell.Coord.Neighbors() {
			other, ok := board.FindByCoord(nb)
			if ok && other.Owner == seat {
				uf.union(cell.Index, other.Index)
			}
		}
	}

	for _, cell := range board.Cells {
		if cell.Owner == seat && uf.sides[uf.find(cell.Index)] == allSides {
			return true
		}
	}

	return false
}
