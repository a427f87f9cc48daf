package mcts

import (
	"github.com/chewxy/math32"

	"github.com/cuboidai/cuboid/game"
)

/*
One iteration walks the SELECT → EXPAND → PLAYOUT → BACKUP cycle. The
board travels with the cursor the whole way: selection applies moves,
backup undoes them, and the playout cleans up after itself, so when
RunOneIteration returns, the board is back at the confirmed position.
*/

// RunOneIteration performs one full search iteration from the
// confirmed node. It must not be interleaved with Decide or
// DecideManually; the caller checks its time budget in between calls.
func (t *MCTS) RunOneIteration() {
	if t.cursor != t.confirmed {
		panic("iteration must start from the confirmed node")
	}
	for {
		t.selectLeaf()
		if !t.expand() {
			break
		}
	}
	result := t.playout()
	t.backup(result)
}

// selectLeaf descends from the cursor to a leaf: an unvisited child
// when one exists (UCB1 = 0), otherwise a maximal-UCB1 child, ties
// broken uniformly at random.
func (t *MCTS) selectLeaf() {
	for len(t.children[t.cursor]) > 0 {
		kids := t.children[t.cursor]
		scores := make([]float32, len(kids))
		var maxScore float32
		for i, kid := range kids {
			scores[i] = t.ucb1(kid)
			if scores[i] > maxScore {
				maxScore = scores[i]
			}
		}
		var cands []int
		for i, s := range scores {
			if s == 0 {
				cands = append(cands, i)
			}
		}
		if len(cands) == 0 {
			for i, s := range scores {
				if s == maxScore {
					cands = append(cands, i)
				}
			}
		}
		t.descend(kids[t.uniformPick(cands)])
	}
}

// expand generates children of the cursor when allowed: always at the
// confirmed node itself, otherwise only once the node's accumulated
// win+loss count has reached ExpandThreshold. Returns whether new
// children were generated (a terminal position yields none).
func (t *MCTS) expand() bool {
	n := t.nodeFromNaughty(t.cursor)
	if t.cursor != t.confirmed && n.stats.Wins[0]+n.stats.Wins[1] < int32(t.ExpandThreshold) {
		return false
	}
	if len(t.children[t.cursor]) > 0 {
		return false
	}
	return len(t.genChildren(t.cursor)) > 0
}

// playout runs one random game from the cursor's board: uniformly
// random touch-adjacent legal moves until Judge resolves or
// PlayoutDepth moves were made. Reaching the depth cap counts the
// playout in Total only. Every playout move is undone before
// returning.
func (t *MCTS) playout() PlayoutResult {
	b := t.board
	start := len(b.History())
	result := game.Undetermined
	for b.MoveNumber() <= b.MaxMoves() && len(b.History())-start <= t.PlayoutDepth {
		legal := b.LegalMoves(false, true)
		if len(legal) == 0 {
			break
		}
		if _, err := b.Move(legal[t.rand.Intn(len(legal))]); err != nil {
			panic("playout constructed an illegal move: " + err.Error())
		}
		if result = b.Judge(); result != game.Undetermined {
			break
		}
	}
	for len(b.History()) > start {
		b.Undo()
	}

	r := PlayoutResult{Total: 1}
	if winner, ok := result.Winner(); ok {
		r.Wins[winner] = 1
	}
	return r
}

// backup accumulates the playout result into every node from the
// cursor up to, but excluding, the confirmed node, undoing moves along
// the way. The confirmed node's own statistics never change.
func (t *MCTS) backup(result PlayoutResult) {
	for t.cursor != t.confirmed {
		t.nodeFromNaughty(t.cursor).stats.Add(result)
		t.ascend()
	}
}

// Decide commits to a child of the confirmed node and returns its
// index. If any child signals a forced win (heuristic value at or
// above game.ForcedWin), the choice is uniform among forced-win
// children with maximal adjusted visit count. Otherwise the child
// maximizing playouts + ownWins - opponentWins is taken, with ties
// broken uniformly among children sharing the maximal raw heuristic
// value. The chosen child becomes the confirmed node.
func (t *MCTS) Decide() int {
	kids := t.children[t.confirmed]
	if len(kids) == 0 {
		// no iteration expanded this node yet
		kids = t.genChildren(t.confirmed)
	}
	if len(kids) == 0 {
		panic("Decide on a childless confirmed node")
	}
	p := t.nodeFromNaughty(kids[0]).move.Player
	adjusted := make([]int32, len(kids))
	values := make([]float32, len(kids))
	vmax := math32.Inf(-1)
	for i, kid := range kids {
		n := t.nodeFromNaughty(kid)
		adjusted[i] = n.stats.Total + n.stats.Wins[p] - n.stats.Wins[game.Opponent(p)]
		values[i] = n.move.Value
		if values[i] > vmax {
			vmax = values[i]
		}
	}

	var decided int
	if vmax >= game.ForcedWin {
		var nmax int32
		for i := range kids {
			if values[i] >= game.ForcedWin && adjusted[i] > nmax {
				nmax = adjusted[i]
			}
		}
		var cands []int
		for i := range kids {
			if values[i] >= game.ForcedWin && adjusted[i] == nmax {
				cands = append(cands, i)
			}
		}
		decided = t.uniformPick(cands)
	} else {
		nmax := adjusted[0]
		for _, a := range adjusted[1:] {
			if a > nmax {
				nmax = a
			}
		}
		var best []int
		for i, a := range adjusted {
			if a == nmax {
				best = append(best, i)
			}
		}
		if len(best) == 1 {
			decided = best[0]
		} else {
			var cands []int
			for i, v := range values {
				if v == vmax {
					cands = append(cands, i)
				}
			}
			decided = t.uniformPick(cands)
		}
	}

	t.descend(kids[decided])
	t.confirm()
	return decided
}

// DecideManually advances the confirmed node along an externally
// observed move, materializing the child if the move is legal but was
// never expanded. Returns ErrAmbiguousMove when the move cannot be
// matched; the tree is then unusable for this game.
func (t *MCTS) DecideManually(m game.Move) error {
	if _, err := t.descendMove(m); err != nil {
		return err
	}
	t.confirm()
	return nil
}

// confirm marks the cursor as the committed game position.
func (t *MCTS) confirm() {
	t.nodeFromNaughty(t.cursor).claimed = true
	t.confirmed = t.cursor
}
