package game

// Weights is the heuristic weight table used to rank legal moves.
// The values are empirically tuned; they order candidates for the
// search and never decide legality.
type Weights struct {
	// retrieval scoring
	GetDir  [3]float32 // direction preference, indexed by Direction
	GetFree float32    // per lateral face left unoccupied after probing

	// placement scoring
	PutDir     [3]float32    // direction preference
	Parity     float32       // (x+y) even bonus
	Edge       float32       // per block resting on a ground-level goal edge
	Manhattan3 float32       // per block exactly 3 cells from an own block
	Touch      float32       // multiplier of the adjacency tally
	TouchTable [3][12]float32 // per-direction weights of the 12 touch entries (both blocks)
	OpposedX   float32       // penalty: both blocks share one own N or S neighbour (X pieces)
	OpposedY   float32       // penalty: both blocks share one own E or W neighbour (Y pieces)

	// Reach is awarded when the probed move, or the opponent's reply
	// at the same coordinates, yields an immediate win. Anything at or
	// above ForcedWin is treated as a forced win by the decision rule.
	Reach float32
}

// ForcedWin is the heuristic value at which a move signals a forced win.
const ForcedWin float32 = 10000

// DefaultWeights returns the tuned weight table.
func DefaultWeights() Weights {
	return Weights{
		GetDir:  [3]float32{5, 1, 10},
		GetFree: 2,

		PutDir:     [3]float32{3, 5, 1},
		Parity:     1,
		Edge:       1,
		Manhattan3: 1,
		Touch:      4,
		TouchTable: [3][12]float32{
			{4, 0, 1, 2, 0, 0, 4, 2, 1, 0, 0, 0},
			{10, 2, 0, 2, 0, 0, 0, 1, 3, 1, 0, 0},
			{3, 1, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0},
		},
		OpposedX: 4,
		OpposedY: 2,

		Reach: ForcedWin,
	}
}

// scoreMove computes m's heuristic value in place. All probing
// mutations are undone before returning. Weights scale each component:
// retrieval favours the direction preference and freeing board cells;
// placement combines direction, parity, goal-edge contact, landing 3
// cells from an own block, the weighted adjacency tally, and the
// immediate-win probe.
func (b *Board) scoreMove(m *Move) {
	if m.IsPass {
		return
	}
	w := &b.weights
	if m.IsGet {
		m.Value = w.GetDir[m.Dir]*1.0 + float32(b.probeFreedSides(*m))*w.GetFree
		return
	}

	piece, err := b.Move(*m)
	if err != nil {
		panic("scoring an illegal move: " + err.Error())
	}
	first, second := piece*2, piece*2+1

	var valEdge float32
	if b.blocks[first].Y == 0 && b.blocks[first].Z == 0 {
		valEdge++
	}
	if b.blocks[second].Y == b.conf.MaxY-1 && b.blocks[second].Z == 0 {
		valEdge++
	}

	var valManhattan float32
	if b.nearestOwn(first, m.Player) == 3 {
		valManhattan += 2
	}
	if b.nearestOwn(second, m.Player) == 3 {
		valManhattan += 2
	}

	valTouch := b.touchTally(first, m.Dir)

	var valReach float32
	if b.Judge() != Undetermined {
		valReach++
	}
	b.Undo()

	// Would the opponent win by taking the same coordinates? Probe
	// their reply; it may itself be illegal (no spares, vacated cell),
	// in which case there is nothing to block.
	reply := Move{Player: Opponent(m.Player), X: m.X, Y: m.Y, Dir: m.Dir}
	if _, err := b.Move(reply); err == nil {
		if b.Judge() != Undetermined {
			valReach++
		}
		b.Undo()
	}

	var valParity float32
	if (m.X+m.Y)%2 == 0 {
		valParity = 1
	}

	m.Value = w.PutDir[m.Dir]*2.0 +
		valEdge*w.Edge +
		valTouch*w.Touch +
		valParity*w.Parity +
		valManhattan*w.Manhattan3 +
		valReach*w.Reach
}

// probeFreedSides applies the retrieval, counts the vacated blocks'
// empty lateral neighbour entries, and undoes the probe. More empty
// sides means the retrieval frees up more of the board.
func (b *Board) probeFreedSides(m Move) int {
	piece, err := b.Move(m)
	if err != nil {
		panic("scoring an illegal move: " + err.Error())
	}
	b.Undo()
	var free int
	for _, slot := range []int{piece * 2, piece*2 + 1} {
		for f := North; f <= West; f++ {
			if b.touch[slot][f] < 0 {
				free++
			}
		}
	}
	return free
}

// nearestOwn returns the minimum Manhattan distance from block slot to
// any other placed block of p, excluding slot's own piece.
func (b *Board) nearestOwn(slot int, p Player) int {
	best := 1 << 30
	piece := slot / 2
	lo, hi := b.poolRange(p)
	for i := lo; i < hi; i++ {
		if i/2 == piece || b.blocks[i] == unplaced {
			continue
		}
		if d := b.blocks[slot].Manhattan(b.blocks[i]); d < best {
			best = d
		}
	}
	return best
}

// touchTally sums the direction-specific adjacency weights over the 12
// touch entries of the just-placed piece, minus a penalty when both
// blocks lean on the same own piece through opposing lateral faces.
func (b *Board) touchTally(first int, dir Direction) float32 {
	w := &b.weights
	second := first + 1

	var tally float32
	for f := 0; f < int(numFaces); f++ {
		if b.touch[first][f] >= 0 {
			tally += w.TouchTable[dir][f]
		}
		if b.touch[second][f] >= 0 {
			tally += w.TouchTable[dir][int(numFaces)+f]
		}
	}

	switch dir {
	case DirX:
		if b.sharedOwnNeighbour(first, North) {
			tally -= w.OpposedX
		} else if b.sharedOwnNeighbour(first, South) {
			tally -= w.OpposedX
		}
	case DirY:
		if b.sharedOwnNeighbour(first, East) {
			tally -= w.OpposedY
		} else if b.sharedOwnNeighbour(first, West) {
			tally -= w.OpposedY
		}
	}
	return tally
}

// sharedOwnNeighbour reports whether both blocks of the piece at even
// slot first touch the same piece on face f, and that piece belongs to
// the same player.
func (b *Board) sharedOwnNeighbour(first int, f Face) bool {
	n1, n2 := b.touch[first][f], b.touch[first+1][f]
	if n1 < 0 || n2 < 0 || n1/2 != n2/2 {
		return false
	}
	return b.owner(n1) == b.owner(first)
}
