package cuboid

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/cuboidai/cuboid/game"
	"github.com/cuboidai/cuboid/mcts"
	"github.com/cuboidai/cuboid/wire"
)

// Player plays one side of a game against a referee. All methods run
// on the caller's goroutine; the tree is never touched concurrently.
type Player struct {
	conf Config
	side game.Player
	tree *mcts.MCTS

	logger *log.Logger

	lastEnemy []wire.Placement
	needGet   bool
}

// NewPlayer creates a player for the given side. Panics on an invalid
// config.
func NewPlayer(side game.Player, conf Config) *Player {
	if !conf.IsValid() {
		panic("cuboid.Config is not valid. Unable to proceed")
	}
	if !side.Valid() {
		panic("invalid side")
	}
	monitor := conf.Monitor
	if monitor == nil {
		monitor = io.Discard
	}
	return &Player{
		conf:   conf,
		side:   side,
		tree:   mcts.New(conf.MCTS),
		logger: log.New(monitor, "", log.Ltime),
	}
}

// Tree returns the player's search tree.
func (p *Player) Tree() *mcts.MCTS { return p.tree }

// GrowTree runs one search iteration. Called in a loop while waiting
// for the referee, and by the time-budget loops in DecideMove.
func (p *Player) GrowTree() { p.tree.RunOneIteration() }

// ReadState ingests one referee line: it replays whatever moves the
// opponent made since the previous line into the tree, and notes
// whether our own pool is exhausted, which forces a get next turn.
// Returns true when the referee signalled game over.
func (p *Player) ReadState(line string) (bool, error) {
	state, err := wire.ParseState(line)
	if errors.Cause(err) == wire.ErrGameOver {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	enemy := game.Opponent(p.side)
	cur := state.PlacementsOf(enemy)
	for _, m := range wire.ResolveMoves(p.lastEnemy, cur, enemy) {
		p.logger.Printf("%v", m)
		if err := p.tree.DecideManually(m); err != nil {
			return false, errors.WithMessagef(err, "replaying %v", m)
		}
		p.logger.Printf("\n%v", p.tree.Board())
		p.record()
	}
	p.lastEnemy = cur
	p.needGet = state.Remaining[p.side] == 0
	return false, nil
}

// DecideMove searches within the turn's time budget and commits the
// turn's moves. When the pool is exhausted the turn is two decisions,
// the get on the ThinkGet slice of the budget and the put on the rest;
// otherwise the whole budget goes to a single put. The returned get is
// nil when the turn had none.
func (p *Player) DecideMove() (put game.Move, get *game.Move) {
	start := time.Now()
	if p.needGet {
		for time.Since(start) < p.conf.ThinkGet {
			p.tree.RunOneIteration()
		}
		p.tree.Decide()
		g := p.lastMove()
		get = &g
		p.record()
	}
	for time.Since(start) < p.conf.Think {
		p.tree.RunOneIteration()
	}
	p.tree.Decide()
	put = p.lastMove()
	p.record()
	return put, get
}

// record hands the current board to the configured recorder.
func (p *Player) record() {
	if p.conf.Record == nil {
		return
	}
	if err := p.conf.Record.Encode(p.tree.Board()); err != nil {
		p.logger.Printf("record frame: %v", err)
	}
}

// lastMove returns the move the latest Decide committed.
func (p *Player) lastMove() game.Move {
	h := p.tree.Board().History()
	return h[len(h)-1]
}

// Run plays the whole game: read a referee line, replay the opponent,
// think, answer. Input is read on its own goroutine so the search can
// keep growing the tree while the referee is silent; the loop polls
// for an arrived line between iterations.
func (p *Player) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		var line string
		var ok bool
	wait:
		for {
			select {
			case line, ok = <-lines:
				break wait
			default:
				p.GrowTree()
			}
		}
		if !ok {
			if err := scanner.Err(); err != nil {
				return errors.WithMessage(err, "referee input")
			}
			return errors.New("referee input closed without game over")
		}

		over, err := p.ReadState(line)
		if err != nil {
			return err
		}
		if over {
			if p.conf.Record != nil {
				return errors.WithMessage(p.conf.Record.Flush(), "flushing record")
			}
			return nil
		}

		put, get := p.DecideMove()
		var msg string
		if get != nil {
			msg = wire.EncodeMove(put, *get)
		} else {
			msg = wire.EncodeMove(put)
		}
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return errors.WithMessage(err, "referee output")
		}
	}
}
