// Package cuboid is the top level structure and the entry point of the
// API. It wraps the search tree in a referee-facing player that budgets
// thinking time and keeps searching in the background while the referee
// line is still in flight.
package cuboid

import (
	"io"
	"time"

	"github.com/cuboidai/cuboid/game"
	"github.com/cuboidai/cuboid/mcts"
)

// Recorder consumes the board after every committed move, and is
// flushed once when the game ends. encoding/gif.Encoder implements it.
type Recorder interface {
	Encode(b *game.Board) error
	Flush() error
}

// Config configures a Player.
type Config struct {
	MCTS mcts.Config

	// Think is the budget for one whole turn. ThinkGet is the slice of
	// it spent deciding the retrieval when a turn needs a get before
	// its put; the remainder of Think then goes to the put.
	Think    time.Duration
	ThinkGet time.Duration

	// Monitor receives resolved opponent moves and board snapshots.
	// Nil discards them.
	Monitor io.Writer

	// Record, when set, receives the game record frame by frame.
	Record Recorder
}

// DefaultConfig returns the competition timing defaults.
func DefaultConfig() Config {
	return Config{
		MCTS:     mcts.DefaultConfig(),
		Think:    4 * time.Second,
		ThinkGet: 2 * time.Second,
	}
}

func (c Config) IsValid() bool {
	return c.MCTS.IsValid() && c.Think > 0 && c.ThinkGet > 0 && c.ThinkGet < c.Think
}
