package entity

type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

const BoardSize = 3

// rows, columns, diagonals
var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid indexed as [row][col]. Callers must keep coordinates inside InBounds.
type Board [BoardSize][BoardSize]Mark

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that *Board) IsEmpty(row, col int) bool {
	return that[row][col] == MarkEmpty
}

// Place overwrites the cell without checking what was there.
func (that *Board) Place(row, col int, mark Mark) {
	that[row][col] = mark
}

// Render returns the printable symbol of every cell, a blank for empty ones.
func (that *Board) Render() [BoardSize][BoardSize]string {
	var view [BoardSize][BoardSize]string

	for row := range BoardSize {
		for col := range BoardSize {
			view[row][col] = that[row][col].Symbol()
		}
	}

	return view
}

func (that *Board) hasLine(mark Mark) bool {
	if mark == MarkEmpty {
		return false
	}

	for _, line := range winLines {
		if that[line[0][0]][line[0][1]] == mark &&
			that[line[1][0]][line[1][1]] == mark &&
			that[line[2][0]][line[2][1]] == mark {
			return true
		}
	}

	return false
}

func (m Mark) Symbol() string {
	if m == MarkEmpty {
		return " "
	}
	return string(m)
}
