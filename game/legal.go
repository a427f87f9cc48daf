package game

// xydir is a placement candidate before it becomes a Move.
type xydir struct {
	x, y int
	dir  Direction
}

// Mover infers whose turn it is and whether that player must retrieve.
// It is a pure function of the current board state, so it stays
// correct across Undo: a player with no spare pieces must retrieve,
// unless the immediately preceding move was that player's retrieval,
// in which case the same player must place.
func (b *Board) Mover() (p Player, mustGet bool) {
	last, ok := b.lastMove()
	switch {
	case !ok:
		return White, false
	case last.IsGet:
		return last.Player, false
	default:
		p = Opponent(last.Player)
		return p, b.Spares(p) == 0
	}
}

// LegalMoves enumerates every legal move of the inferred mover.
//
// In the retrieval phase it lists the mover's topmost, exposed pieces
// along each permissible extraction axis. In the placement phase it
// lists every (x, y, direction) satisfying the non-floating
// constraint; onlyTouch restricts candidates to ground-level cells
// adjacent to existing stacks, which keeps random playouts tractable.
// A cell just vacated by an immediately preceding retrieval is always
// excluded.
//
// If calcValue is set, every candidate is scored through a scoped
// apply/undo that leaves the board untouched.
func (b *Board) LegalMoves(calcValue, onlyTouch bool) []Move {
	player, mustGet := b.Mover()

	var legal []Move
	if mustGet {
		legal = b.legalGets(player)
	} else {
		legal = b.legalPuts(player, onlyTouch)
	}
	if calcValue {
		for i := range legal {
			b.scoreMove(&legal[i])
		}
	}
	return legal
}

// legalGets lists the retrievals available to p: pieces with no other
// block resting on any of their blocks.
func (b *Board) legalGets(p Player) []Move {
	var legal []Move
	lo, hi := b.poolRange(p)
	for i := lo; i < hi; i += 2 {
		first, second := b.blocks[i], b.blocks[i+1]
		if first == unplaced {
			continue
		}
		if first.X == second.X && first.Y == second.Y {
			// vertical piece, extracted along Z
			if second.Z == b.heights[second.Y][second.X]-1 {
				legal = append(legal, Move{Player: p, X: first.X, Y: first.Y, Dir: DirZ, IsGet: true})
			}
			continue
		}
		if first.Z == b.heights[first.Y][first.X]-1 &&
			second.Z == b.heights[second.Y][second.X]-1 {
			dir := DirX
			if first.Y != second.Y {
				dir = DirY
			}
			legal = append(legal, Move{Player: p, X: first.X, Y: first.Y, Dir: dir, IsGet: true})
		}
	}
	return legal
}

func (b *Board) legalPuts(p Player, onlyTouch bool) []Move {
	seen := make(map[xydir]bool)
	var cands []xydir
	add := func(x, y int, d Direction) {
		c := xydir{x, y, d}
		if !seen[c] {
			seen[c] = true
			cands = append(cands, c)
		}
	}

	if onlyTouch {
		b.touchingPuts(add)
	} else {
		for y := 0; y < b.conf.MaxY; y++ {
			for x := 0; x < b.conf.MaxX; x++ {
				if x < b.conf.MaxX-1 && b.heights[y][x] == b.heights[y][x+1] {
					add(x, y, DirX)
				}
				if y < b.conf.MaxY-1 && b.heights[y][x] == b.heights[y+1][x] {
					add(x, y, DirY)
				}
				add(x, y, DirZ)
			}
		}
	}

	// drop the cell an immediately preceding retrieval vacated
	vacated := xydir{-1, -1, -1}
	if last, ok := b.lastMove(); ok && last.IsGet {
		vacated = xydir{last.X, last.Y, last.Dir}
	}

	legal := make([]Move, 0, len(cands))
	for _, c := range cands {
		if c == vacated {
			continue
		}
		legal = append(legal, Move{Player: p, X: c.x, Y: c.y, Dir: c.dir})
	}
	return legal
}

// touchingPuts emits the placement candidates whose target cells are
// empty ground-level cells laterally adjacent to an existing stack.
func (b *Board) touchingPuts(add func(x, y int, d Direction)) {
	maxX, maxY := b.conf.MaxX, b.conf.MaxY

	// ground-level empty cells next to at least one occupied column
	ground := make(map[[2]int]bool)
	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			if b.heights[y][x] == 0 {
				continue
			}
			if x > 0 && b.heights[y][x-1] == 0 {
				ground[[2]int{x - 1, y}] = true
			}
			if x < maxX-1 && b.heights[y][x+1] == 0 {
				ground[[2]int{x + 1, y}] = true
			}
			if y > 0 && b.heights[y-1][x] == 0 {
				ground[[2]int{x, y - 1}] = true
			}
			if y < maxY-1 && b.heights[y+1][x] == 0 {
				ground[[2]int{x, y + 1}] = true
			}
		}
	}

	for cell := range ground {
		x, y := cell[0], cell[1]
		if x > 0 && b.heights[y][x-1] == 0 {
			add(x-1, y, DirX)
		}
		if x < maxX-1 && b.heights[y][x+1] == 0 {
			add(x, y, DirX)
		}
		if y > 0 && b.heights[y-1][x] == 0 {
			add(x, y-1, DirY)
		}
		if y < maxY-1 && b.heights[y+1][x] == 0 {
			add(x, y, DirY)
		}
		add(x, y, DirZ)
	}
}
