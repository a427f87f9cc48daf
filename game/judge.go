package game

// Judge decides the current position. A player wins when a chain of
// their own mutually touching blocks links a block resting on the
// north edge at ground level (y=0, z=0) to one resting on the south
// edge at ground level (y=MaxY-1, z=0). If nobody has connected and
// the move counter has reached the ceiling, the game is a draw.
func (b *Board) Judge() Result {
	n := len(b.blocks)
	fromNorth := make([]bool, n)
	stack := make([]int, 0, n)
	for i, c := range b.blocks {
		if c != unplaced && c.Y == 0 && c.Z == 0 {
			fromNorth[i] = true
			stack = append(stack, i)
		}
	}

	// flood fill through same-player adjacency links
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, j := range b.touch[i] {
			if j < 0 || fromNorth[j] || b.owner(j) != b.owner(i) {
				continue
			}
			fromNorth[j] = true
			stack = append(stack, j)
		}
	}

	for i, c := range b.blocks {
		if fromNorth[i] && c.Y == b.conf.MaxY-1 && c.Z == 0 {
			return Win(b.owner(i))
		}
	}
	if b.moveN >= b.conf.MaxMoves {
		return Draw
	}
	return Undetermined
}
