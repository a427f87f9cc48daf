package game

import (
	"fmt"
)

// Format renders the board as a y-by-x table; every cell shows its
// column's stack bottom-to-top, one letter per block ('W'/'B').
func (b *Board) Format(s fmt.State, c rune) {
	maxX, maxY := b.conf.MaxX, b.conf.MaxY

	stacks := make([][][]byte, maxY)
	for y := range stacks {
		stacks[y] = make([][]byte, maxX)
	}
	for i, cd := range b.blocks {
		if cd == unplaced {
			continue
		}
		col := stacks[cd.Y][cd.X]
		for len(col) <= cd.Z {
			col = append(col, ' ')
		}
		col[cd.Z] = byte(fmt.Sprintf("%s", b.owner(i))[0])
		stacks[cd.Y][cd.X] = col
	}

	widths := make([]int, maxX)
	for x := 0; x < maxX; x++ {
		widths[x] = 1
		for y := 0; y < maxY; y++ {
			if l := len(stacks[y][x]); l > widths[x] {
				widths[x] = l
			}
		}
	}

	fmt.Fprintf(s, "Board(n=%d)\n", b.moveN)
	fmt.Fprint(s, "    ")
	for x := 0; x < maxX; x++ {
		fmt.Fprintf(s, "%-*d ", widths[x], x)
	}
	fmt.Fprint(s, "\n")
	for y := 0; y < maxY; y++ {
		fmt.Fprintf(s, "%2d ⎢", y)
		for x := 0; x < maxX; x++ {
			cell := string(stacks[y][x])
			if cell == "" {
				cell = "·"
			}
			fmt.Fprintf(s, "%-*s ", widths[x], cell)
		}
		fmt.Fprint(s, "⎥\n")
	}
}
