// Package wire speaks the referee's text protocol: one line of board
// state in, one line of move text out. Coordinates on the wire are
// 1-based two-corner pairs; the engine works with 0-based min-corner
// plus direction, and this package converts between the two.
package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/cuboidai/cuboid/game"
)

// ErrGameOver is returned by ParseState for the referee's "-1" line.
var ErrGameOver = errors.New("referee signalled game over")

// Placement is one piece as the referee reports it: two ground-plane
// corners, 1-based. A vertical piece has both corners equal.
type Placement struct {
	Owner          game.Player
	X1, Y1, X2, Y2 int
}

// Move converts the placement to engine coordinates: 0-based min
// corner, direction from the corner deltas.
func (p Placement) Move(player game.Player, isGet bool) game.Move {
	m := game.Move{
		Player: player,
		X:      minInt(p.X1, p.X2) - 1,
		Y:      minInt(p.Y1, p.Y2) - 1,
		IsGet:  isGet,
	}
	switch {
	case p.X1 != p.X2 && p.Y1 == p.Y2:
		m.Dir = game.DirX
	case p.X1 == p.X2 && p.Y1 != p.Y2:
		m.Dir = game.DirY
	default:
		m.Dir = game.DirZ
	}
	return m
}

// State is one parsed referee line: the two remaining-piece counters
// followed by every placed piece, in placement order.
type State struct {
	Remaining  [2]int
	Placements []Placement
}

// PlacementsOf returns p's pieces, preserving the referee's order.
func (s State) PlacementsOf(p game.Player) []Placement {
	var retVal []Placement
	for _, pl := range s.Placements {
		if pl.Owner == p {
			retVal = append(retVal, pl)
		}
	}
	return retVal
}

// ParseState parses one referee line: two ints of remaining pieces,
// then five-int groups of (owner, x1, y1, x2, y2) with owners and
// coordinates 1-based. The line "-1" yields ErrGameOver.
func ParseState(line string) (State, error) {
	var retVal State
	fields := strings.Fields(line)
	if len(fields) == 1 && fields[0] == "-1" {
		return retVal, ErrGameOver
	}
	if len(fields) < 2 || (len(fields)-2)%5 != 0 {
		return retVal, errors.Errorf("malformed state line: %d fields", len(fields))
	}
	ints := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return retVal, errors.WithMessagef(err, "state field %d", i)
		}
		ints[i] = v
	}
	retVal.Remaining[game.White] = ints[0]
	retVal.Remaining[game.Black] = ints[1]
	for i := 2; i < len(ints); i += 5 {
		owner := ints[i]
		if owner != 1 && owner != 2 {
			return retVal, errors.Errorf("bad owner %d in state line", owner)
		}
		retVal.Placements = append(retVal.Placements, Placement{
			Owner: game.Player(owner - 1),
			X1:    ints[i+1], Y1: ints[i+2],
			X2: ints[i+3], Y2: ints[i+4],
		})
	}
	return retVal, nil
}

// ResolveMoves derives the moves a player made between two snapshots
// of that player's pieces. A grown list is a single put of the newest
// piece. An equal-length list with a changed entry is a get of the old
// position followed by a put of the newest piece. An empty current
// list means no move yet.
func ResolveMoves(prev, cur []Placement, p game.Player) []game.Move {
	if len(cur) == 0 {
		return nil
	}
	var retVal []game.Move
	if len(cur) == len(prev) {
		for i := range prev {
			if prev[i] != cur[i] {
				retVal = append(retVal, prev[i].Move(p, true))
				break
			}
		}
	}
	retVal = append(retVal, cur[len(cur)-1].Move(p, false))
	return retVal
}

// EncodeMove renders the decided put, and optionally the get that
// preceded it, as the referee's 1-based two-corner text.
func EncodeMove(put game.Move, get ...game.Move) string {
	var sb strings.Builder
	writeCorners(&sb, put)
	for _, g := range get {
		sb.WriteByte(' ')
		writeCorners(&sb, g)
	}
	return sb.String()
}

func writeCorners(sb *strings.Builder, m game.Move) {
	x2, y2 := m.X, m.Y
	switch m.Dir {
	case game.DirX:
		x2++
	case game.DirY:
		y2++
	}
	fmt.Fprintf(sb, "%d %d %d %d", m.X+1, m.Y+1, x2+1, y2+1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
