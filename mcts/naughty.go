package mcts

// naughty is essentially *Node: an index into the tree's node arena.
type naughty int32

func (n naughty) isValid() bool { return n >= 0 }

const (
	nilNode naughty = -1
)
