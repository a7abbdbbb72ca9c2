package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Placed cell is no longer empty", func(t *testing.T) {
		for row := range BoardSize {
			for col := range BoardSize {
				// Given: an empty board
				var board Board
				require.True(t, board.IsEmpty(row, col))

				// When: a mark is placed on the cell
				board.Place(row, col, MarkX)

				// Then: the cell is not empty anymore
				assert.False(t, board.IsEmpty(row, col), "cell [%d][%d]", row, col)
			}
		}
	})
}

func TestBoard_Render(t *testing.T) {
	// Given: a board with two marks
	var board Board
	board.Place(0, 0, MarkX)
	board.Place(1, 2, MarkO)

	// When: rendering the board
	view := board.Render()

	// Then: empty cells are blanks and marks keep their symbol
	expected := [BoardSize][BoardSize]string{
		{"X", " ", " "},
		{" ", " ", "O"},
		{" ", " ", " "},
	}
	assert.Equal(t, expected, view)
}

func TestBoard_hasLine(t *testing.T) {
	for i, line := range winLines {
		// Given: a board where only one winning line is filled with X
		var board Board
		for _, cell := range line {
			board.Place(cell[0], cell[1], MarkX)
		}

		// Then: X has a line and O has not
		assert.True(t, board.hasLine(MarkX), "line %d", i)
		assert.False(t, board.hasLine(MarkO), "line %d", i)
	}

	t.Run("Empty mark never wins", func(t *testing.T) {
		var board Board
		assert.False(t, board.hasLine(MarkEmpty))
	})
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(2, 2))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, 3))
	assert.False(t, InBounds(3, 1))
}
