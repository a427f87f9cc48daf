package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Config holds the board parameters.
type Config struct {
	MaxX     int // board width
	MaxY     int // board depth (north edge is y=0, south edge is y=MaxY-1)
	MaxPiece int // pieces per player
	MaxMoves int // move-count ceiling; reaching it is a draw
}

// DefaultConfig returns the standard 10×10, 16-piece, 300-move game.
func DefaultConfig() Config {
	return Config{
		MaxX:     10,
		MaxY:     10,
		MaxPiece: 16,
		MaxMoves: 300,
	}
}

func (c Config) IsValid() bool {
	return c.MaxX >= 2 && c.MaxY >= 2 && c.MaxPiece >= 1 && c.MaxMoves >= 1
}

// moveError is an IllegalMove contract violation: the search never
// constructs one of these, because legality comes from LegalMoves.
type moveError Move

func (err moveError) Error() string { return fmt.Sprintf("Unable to make %v", Move(err)) }

// IsIllegal reports whether err stems from an illegal move.
func IsIllegal(err error) bool {
	_, ok := errors.Cause(err).(moveError)
	return ok
}

// Board holds and manipulates one Cuboid position. A Board is created
// once, at the root of a search, and only ever mutated through
// Move/Undo; it is never copied.
type Board struct {
	conf    Config
	weights Weights

	// blocks is a fixed pool of 2×MaxPiece slots per player:
	// White owns [0, 2·MaxPiece), Black owns [2·MaxPiece, 4·MaxPiece).
	// A piece is the slot pair (2i, 2i+1), stored in ascending
	// coordinate order along its direction axis.
	blocks []Coord

	// heights[y][x] is the number of blocks stacked in that column.
	heights [][]int

	// touch[i][f] is the slot touching block i on face f, or -1.
	// Symmetric: touch[i][f] == j implies touch[j][f.Opposite()] == i.
	touch [][numFaces]int

	history []Move
	moveN   int // move counter; gets do not count
}

// NewBoard creates an empty board. Panics on an invalid config, the
// same way an invalid search config does: there is no recovering from
// a malformed game.
func NewBoard(conf Config) *Board {
	if !conf.IsValid() {
		panic("game.Config is not valid. Unable to proceed")
	}
	nblocks := conf.MaxPiece * 4
	b := &Board{
		conf:    conf,
		weights: DefaultWeights(),
		blocks:  make([]Coord, nblocks),
		heights: make([][]int, conf.MaxY),
		touch:   make([][numFaces]int, nblocks),
		history: make([]Move, 0, conf.MaxMoves),
	}
	for i := range b.blocks {
		b.blocks[i] = unplaced
	}
	for y := range b.heights {
		b.heights[y] = make([]int, conf.MaxX)
	}
	for i := range b.touch {
		for f := range b.touch[i] {
			b.touch[i][f] = -1
		}
	}
	return b
}

// SetWeights overrides the heuristic weight table.
func (b *Board) SetWeights(w Weights) { b.weights = w }

// Size returns the board width and depth.
func (b *Board) Size() (int, int) { return b.conf.MaxX, b.conf.MaxY }

// History returns the applied moves, oldest first.
func (b *Board) History() []Move { return b.history }

// MoveNumber returns the move counter. Retrievals do not count; a
// get+put pair advances it by one.
func (b *Board) MoveNumber() int { return b.moveN }

// MaxMoves returns the move-count ceiling.
func (b *Board) MaxMoves() int { return b.conf.MaxMoves }

// Height returns the stack height of column (x, y).
func (b *Board) Height(x, y int) int { return b.heights[y][x] }

// Block returns the coordinate of a block slot; ok is false while the
// block is still in its owner's pool.
func (b *Board) Block(slot int) (c Coord, ok bool) {
	c = b.blocks[slot]
	return c, c != unplaced
}

// Touching returns the adjacency entries of a block slot.
func (b *Board) Touching(slot int) [numFaces]int { return b.touch[slot] }

// owner derives a block slot's owner from its pool range.
func (b *Board) owner(slot int) Player {
	if slot < b.conf.MaxPiece*2 {
		return White
	}
	return Black
}

// Spares returns the number of p's pieces still in the pool.
func (b *Board) Spares(p Player) int {
	var n int
	lo, hi := b.poolRange(p)
	for i := lo; i < hi; i += 2 {
		if b.blocks[i] == unplaced {
			n++
		}
	}
	return n
}

// poolRange returns p's block slot range [lo, hi).
func (b *Board) poolRange(p Player) (lo, hi int) {
	lo = int(p) * b.conf.MaxPiece * 2
	return lo, lo + b.conf.MaxPiece*2
}

// Move applies m and appends it to the history. It returns the index
// of the manipulated piece (pass returns -1). A returned error means
// the caller violated the move contract; the board is unchanged.
func (b *Board) Move(m Move) (piece int, err error) {
	piece = -1
	switch {
	case m.IsPass:
		b.moveN++
	case m.IsGet:
		if piece, err = b.get(m); err != nil {
			return -1, err
		}
	default:
		if piece, err = b.put(m); err != nil {
			return -1, err
		}
		b.moveN++
	}
	b.history = append(b.history, m)
	return piece, nil
}

// Undo pops the last history entry and reapplies its logical inverse
// through the same machinery, restoring the previous state
// bit-for-bit. It is a no-op on an empty history.
func (b *Board) Undo() {
	if len(b.history) == 0 {
		return
	}
	m := b.history[len(b.history)-1].inverse()
	b.history = b.history[:len(b.history)-1]
	switch {
	case m.IsPass:
		b.moveN--
	case m.IsGet: // undoing a put
		if _, err := b.get(m); err != nil {
			panic(fmt.Sprintf("%+v", err))
		}
		b.moveN--
	default: // undoing a get
		if _, err := b.put(m); err != nil {
			panic(fmt.Sprintf("%+v", err))
		}
	}
}

// checkBounds validates m's coordinate for its direction: a piece may
// not hang over the east or south rim.
func (b *Board) checkBounds(m Move) error {
	maxX := b.conf.MaxX
	if m.Dir == DirX {
		maxX--
	}
	if m.X < 0 || m.X >= maxX {
		return errors.WithMessage(moveError(m), "x is out of board")
	}
	maxY := b.conf.MaxY
	if m.Dir == DirY {
		maxY--
	}
	if m.Y < 0 || m.Y >= maxY {
		return errors.WithMessage(moveError(m), "y is out of board")
	}
	return nil
}

// put places a new piece from m.Player's pool.
func (b *Board) put(m Move) (piece int, err error) {
	if !m.Player.Valid() {
		return -1, errors.WithMessage(moveError(m), "Unknown player")
	}
	if !m.Dir.Valid() {
		return -1, errors.WithMessage(moveError(m), "Unknown direction")
	}
	if err = b.checkBounds(m); err != nil {
		return -1, err
	}
	// A placement may not re-fill the exact cell the mover's
	// immediately preceding retrieval vacated.
	if last, ok := b.lastMove(); ok && last.IsGet && last.Player == m.Player &&
		last.X == m.X && last.Y == m.Y && last.Dir == m.Dir {
		return -1, errors.WithMessage(moveError(m), "Same position as the preceding get")
	}

	first := Coord{m.X, m.Y, b.heights[m.Y][m.X]}
	second := first.Add(m.Dir.Vector())
	if m.Dir != DirZ && b.heights[second.Y][second.X] != first.Z {
		return -1, errors.WithMessage(moveError(m), "Block cannot float in air")
	}

	target := b.freeSlot(m.Player)
	if target < 0 {
		return -1, errors.WithMessage(moveError(m), "No spare piece left")
	}

	b.blocks[target] = first
	b.heights[first.Y][first.X]++
	b.blocks[target+1] = second
	b.heights[second.Y][second.X]++
	b.linkTouch(target)
	b.linkTouch(target + 1)
	return target / 2, nil
}

// get removes the topmost exposed own piece whose first block is at
// (m.X, m.Y) with orientation m.Dir; both blocks go back to the pool.
func (b *Board) get(m Move) (piece int, err error) {
	if !m.Player.Valid() {
		return -1, errors.WithMessage(moveError(m), "Unknown player")
	}
	if !m.Dir.Valid() {
		return -1, errors.WithMessage(moveError(m), "Unknown direction")
	}
	if err = b.checkBounds(m); err != nil {
		return -1, err
	}

	target := -1
	lo, hi := b.poolRange(m.Player)
	for i := lo; i < hi; i += 2 {
		first, second := b.blocks[i], b.blocks[i+1]
		if first == unplaced || first.X != m.X || first.Y != m.Y {
			continue
		}
		if !second.Eq(first.Add(m.Dir.Vector())) {
			continue
		}
		if b.exposed(i) {
			target = i
			break
		}
	}
	if target < 0 {
		return -1, errors.WithMessage(moveError(m), "No exposed piece at that position")
	}

	first, second := b.blocks[target], b.blocks[target+1]
	b.blocks[target] = unplaced
	b.heights[first.Y][first.X]--
	b.blocks[target+1] = unplaced
	b.heights[second.Y][second.X]--
	b.unlinkTouch(target)
	b.unlinkTouch(target + 1)
	return target / 2, nil
}

// exposed reports whether the piece at even slot i has nothing resting
// on it: every block of the piece is the top of its column.
func (b *Board) exposed(i int) bool {
	first, second := b.blocks[i], b.blocks[i+1]
	if first.X == second.X && first.Y == second.Y {
		// vertical piece: the upper block decides
		return second.Z == b.heights[second.Y][second.X]-1
	}
	return first.Z == b.heights[first.Y][first.X]-1 &&
		second.Z == b.heights[second.Y][second.X]-1
}

// freeSlot returns the lowest unplaced even slot of p's pool, or -1.
func (b *Board) freeSlot(p Player) int {
	lo, hi := b.poolRange(p)
	for i := lo; i < hi; i += 2 {
		if b.blocks[i] == unplaced {
			return i
		}
	}
	return -1
}

// linkTouch scans all placed blocks and records the up-to-6 adjacency
// entries of the freshly placed block i, plus their reciprocals.
func (b *Board) linkTouch(i int) {
	c := b.blocks[i]
	for j := range b.blocks {
		if j == i || b.blocks[j] == unplaced {
			continue
		}
		for f := Face(0); f < numFaces; f++ {
			if c.Add(faceOffsets[f]).Eq(b.blocks[j]) {
				b.touch[i][f] = j
				b.touch[j][f.Opposite()] = i
			}
		}
	}
}

// unlinkTouch clears every adjacency entry referencing block i, in
// both directions.
func (b *Board) unlinkTouch(i int) {
	for j := range b.blocks {
		for f := range b.touch[j] {
			if b.touch[j][f] == i {
				b.touch[j][f] = -1
			}
		}
	}
	for f := range b.touch[i] {
		b.touch[i][f] = -1
	}
}

func (b *Board) lastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}
