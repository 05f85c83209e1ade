package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	White
	Black
)

// Other returns the opposing player. Empty maps to Empty.
func (c Cell) Other() Cell {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "empty"
	}
}

// Point is a board coordinate; X is the column and Y the row.
type Point struct {
	X, Y int
}

// Board is a fixed width x height grid stored row-major. A Board value is a
// read-only snapshot: methods never mutate the receiver's cells, and Play
// builds a new Board for every accepted move.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard returns a board with the four centre cells set to the opening
// pattern and every other cell Empty.
func NewBoard(width, height int) Board {
	b := Board{width: width, height: height, cells: make([]Cell, width*height)}
	midX, midY := width/2, height/2
	b.set(midX-1, midY-1, White)
	b.set(midX, midY-1, Black)
	b.set(midX-1, midY, Black)
	b.set(midX, midY, White)
	return b
}

// BoardFromRows builds a board from rows of cells, top row first. All rows
// must have the same length.
func BoardFromRows(rows [][]Cell) Board {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	b := Board{width: w, height: h, cells: make([]Cell, w*h)}
	for y, row := range rows {
		copy(b.cells[y*w:(y+1)*w], row)
	}
	return b
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

// InBounds reports whether (x, y) lies on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (b Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[y*b.width+x]
}

// Rows returns a copy of the grid indexed [y][x].
func (b Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range rows {
		rows[y] = make([]Cell, b.width)
		copy(rows[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return rows
}

// Score counts the discs held by player.
func (b Board) Score(player Cell) int {
	n := 0
	for _, c := range b.cells {
		if c == player {
			n++
		}
	}
	return n
}

// Equal reports whether both boards have the same size and contents.
func (b Board) Equal(o Board) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) clone() Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Board{width: b.width, height: b.height, cells: cells}
}

// set writes a cell; callers only use it on boards they own.
func (b Board) set(x, y int, c Cell) {
	if b.InBounds(x, y) {
		b.cells[y*b.width+x] = c
	}
}
