// Package game implements the Cuboid board: a X×Y grid on which two
// players stack two-block dominoes, trying to connect their own north
// and south edges at ground level through a chain of touching blocks.
package game

import (
	"fmt"
)

// Player is one of the two sides. White moves first.
type Player int8

const (
	White Player = iota
	Black
)

func (p Player) Valid() bool { return p == White || p == Black }

// Opponent returns the other player.
func Opponent(p Player) Player { return 1 - p }

func (p Player) Format(s fmt.State, c rune) {
	switch c {
	case 'v':
		switch p {
		case White:
			fmt.Fprint(s, "White")
		case Black:
			fmt.Fprint(s, "Black")
		default:
			fmt.Fprint(s, "???")
		}
	case 's':
		switch p {
		case White:
			fmt.Fprint(s, "W")
		case Black:
			fmt.Fprint(s, "B")
		default:
			fmt.Fprint(s, "?")
		}
	}
}

// Direction is the orientation axis of a piece. The second block of a
// piece sits at the first block's coordinate plus the direction vector.
type Direction int8

const (
	DirX Direction = iota
	DirY
	DirZ
)

func (d Direction) Valid() bool { return d >= DirX && d <= DirZ }

// Vector returns the offset from a piece's first block to its second.
func (d Direction) Vector() Coord {
	switch d {
	case DirX:
		return Coord{1, 0, 0}
	case DirY:
		return Coord{0, 1, 0}
	case DirZ:
		return Coord{0, 0, 1}
	}
	panic("Unknown direction")
}

func (d Direction) Format(s fmt.State, c rune) {
	switch d {
	case DirX:
		fmt.Fprint(s, "X")
	case DirY:
		fmt.Fprint(s, "Y")
	case DirZ:
		fmt.Fprint(s, "Z")
	default:
		fmt.Fprint(s, "?")
	}
}

// Coord is one cell of the 3-D grid.
type Coord struct {
	X, Y, Z int
}

// unplaced is the sentinel coordinate of a block still in its owner's pool.
var unplaced = Coord{-1, -1, -1}

func (c Coord) Add(other Coord) Coord { return Coord{c.X + other.X, c.Y + other.Y, c.Z + other.Z} }

func (c Coord) Eq(other Coord) bool { return c == other }

// Manhattan returns the L1 distance between two cells.
func (c Coord) Manhattan(other Coord) int {
	return absInt(c.X-other.X) + absInt(c.Y-other.Y) + absInt(c.Z-other.Z)
}

// Face indexes the six touching directions of a block.
type Face int

const (
	North Face = iota // y-1
	East              // x+1
	South             // y+1
	West              // x-1
	Up                // z+1
	Down              // z-1
	numFaces
)

// Opposite returns the face a neighbour sees us on.
func (f Face) Opposite() Face {
	switch f {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	}
	panic("Unknown face")
}

// faceOffsets holds the coordinate offset of each face, in Face order.
var faceOffsets = [numFaces]Coord{
	{0, -1, 0},
	{1, 0, 0},
	{0, 1, 0},
	{-1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// Move is one ply: placing a new piece at (X, Y) along Dir, retrieving
// an own piece whose first block is at (X, Y) along Dir, or passing.
// Value is the heuristic score attached by LegalMoves; everything else
// is immutable once created.
type Move struct {
	Player Player
	X, Y   int
	Dir    Direction
	IsGet  bool
	IsPass bool
	Value  float32
}

// Eq reports whether two moves denote the same ply. Value is excluded:
// it is a search annotation, not part of the move's identity.
func (m Move) Eq(other Move) bool {
	return m.Player == other.Player &&
		m.X == other.X && m.Y == other.Y && m.Dir == other.Dir &&
		m.IsGet == other.IsGet && m.IsPass == other.IsPass
}

// inverse returns the move that exactly undoes m.
func (m Move) inverse() Move {
	m.IsGet = !m.IsGet
	return m
}

func (m Move) Format(s fmt.State, c rune) {
	switch {
	case m.IsPass:
		fmt.Fprintf(s, "%v pass", m.Player)
	case m.IsGet:
		fmt.Fprintf(s, "%v get (%d,%d,%s)", m.Player, m.X, m.Y, m.Dir)
	default:
		fmt.Fprintf(s, "%v put (%d,%d,%s)", m.Player, m.X, m.Y, m.Dir)
	}
}

// Result is the outcome of judging a position.
type Result int8

const (
	Undetermined Result = iota
	Draw
	WhiteWin
	BlackWin
)

// Win returns the winning result for p.
func Win(p Player) Result {
	if p == Black {
		return BlackWin
	}
	return WhiteWin
}

// Winner returns the winning player, if any.
func (r Result) Winner() (Player, bool) {
	switch r {
	case WhiteWin:
		return White, true
	case BlackWin:
		return Black, true
	}
	return 0, false
}

func (r Result) Format(s fmt.State, c rune) {
	switch r {
	case Undetermined:
		fmt.Fprint(s, "undetermined")
	case Draw:
		fmt.Fprint(s, "draw")
	case WhiteWin:
		fmt.Fprint(s, "White wins")
	case BlackWin:
		fmt.Fprint(s, "Black wins")
	}
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
