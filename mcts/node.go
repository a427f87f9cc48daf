package mcts

import (
	"fmt"

	"github.com/cuboidai/cuboid/game"
)

// PlayoutResult is the (total, whiteWins, blackWins) triple of one or
// more playouts. A depth-capped playout counts toward Total only.
type PlayoutResult struct {
	Total int32
	Wins  [2]int32
}

// Add accumulates other elementwise.
func (r *PlayoutResult) Add(other PlayoutResult) {
	r.Total += other.Total
	r.Wins[0] += other.Wins[0]
	r.Wins[1] += other.Wins[1]
}

// Node is one explored position: the move that led to it, plus the
// playout statistics accumulated below it. Nodes live in the tree's
// arena; parent is a weak back-index, never an owning reference, so
// there is no parent/child cycle to manage. The node does NOT hold a
// board - the tree's single board belongs to whichever node the
// cursor rests on.
type Node struct {
	move    game.Move
	stats   PlayoutResult
	depth   int32 // plies from the root
	claimed bool  // part of the committed game line

	id     naughty
	parent naughty
}

// Move returns the move leading from the parent into this node.
func (n *Node) Move() game.Move { return n.move }

// Stats returns the node's accumulated playout statistics.
func (n *Node) Stats() PlayoutResult { return n.stats }

// IsNotVisited returns true if this node has never had a playout.
func (n *Node) IsNotVisited() bool { return n.stats.Total == 0 }

// Confirmed reports whether the node lies on the committed game line.
func (n *Node) Confirmed() bool { return n.claimed }

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Depth: %d Move: %v Playouts: (%d, %d, %d)}",
		n.id, n.depth, n.move, n.stats.Total, n.stats.Wins[0], n.stats.Wins[1])
}
