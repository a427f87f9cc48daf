package mcts

import (
	"math/rand"
	"sort"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/cuboidai/cuboid/game"
)

// Config is the structure to configure the search tree.
type Config struct {
	Board game.Config

	Branching       int // children generated per expansion
	ExpandThreshold int // wins+losses a node needs before it may expand
	PlayoutDepth    int // playout move cap; reaching it is undetermined

	// Seed drives every random tie-break; 0 means wall clock.
	Seed int64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Board:           game.DefaultConfig(),
		Branching:       4,
		ExpandThreshold: 9,
		PlayoutDepth:    30,
	}
}

func (c Config) IsValid() bool {
	return c.Board.IsValid() && c.Branching > 0 && c.ExpandThreshold >= 0 && c.PlayoutDepth > 0
}

// ErrAmbiguousMove is returned when an externally reported move cannot
// be matched to any legal move at the confirmed node. It is fatal for
// that call: the tree has desynchronized from the true game state.
var ErrAmbiguousMove = errors.New("move matches no legal move at the confirmed node")

// MCTS owns the search tree and the one mutable board. Nodes live in a
// flat arena and refer to each other by index, so descending the tree
// never copies board state: the cursor marks the single node that
// currently holds the board, and moving the cursor applies or undoes
// moves in place.
//
// The tree is single-threaded by design. One iteration runs to
// completion before the next starts; callers enforce their time
// budget between iterations.
type MCTS struct {
	Config
	rand *rand.Rand

	nodes    []Node
	children [][]naughty

	board     *game.Board
	cursor    naughty // the node holding the board
	confirmed naughty // the committed game position
}

// New creates a tree rooted at an empty board and pre-expands the
// root. Panics on an invalid config.
func New(conf Config) *MCTS {
	if !conf.IsValid() {
		panic("mcts.Config is not valid. Unable to proceed")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t := &MCTS{
		Config:   conf,
		rand:     rand.New(rand.NewSource(seed)),
		nodes:    make([]Node, 0, 4096),
		children: make([][]naughty, 0, 4096),
		board:    game.NewBoard(conf.Board),
	}
	root := t.alloc(game.Move{}, nilNode)
	t.nodes[root].claimed = true
	t.cursor = root
	t.confirmed = root
	t.genChildren(root)
	return t
}

// Board returns the board of the confirmed position. Valid between
// iterations only; an iteration in flight walks the board along the
// exploration path.
func (t *MCTS) Board() *game.Board { return t.board }

// Confirmed returns the confirmed node.
func (t *MCTS) Confirmed() *Node { return t.nodeFromNaughty(t.confirmed) }

// Nodes returns the number of allocated nodes.
func (t *MCTS) Nodes() int { return len(t.nodes) }

// alloc appends a fresh node to the arena.
func (t *MCTS) alloc(move game.Move, parent naughty) naughty {
	id := naughty(len(t.nodes))
	var depth int32
	if parent.isValid() {
		depth = t.nodes[parent].depth + 1
	}
	t.nodes = append(t.nodes, Node{
		move:   move,
		depth:  depth,
		id:     id,
		parent: parent,
	})
	t.children = append(t.children, nil)
	return id
}

// nodeFromNaughty gets the node given the index.
func (t *MCTS) nodeFromNaughty(ptr naughty) *Node { return &t.nodes[int(ptr)] }

// Children returns the ordered child list of a node.
func (t *MCTS) Children(of naughty) []naughty { return t.children[of] }

// genChildren materializes up to Branching children of id: the
// highest-valued legal moves of the held board, pre-shuffled so that
// equal-valued candidates end up in uniformly random order. Valid only
// while id has no children and holds the board.
func (t *MCTS) genChildren(id naughty) []naughty {
	if len(t.children[id]) > 0 {
		return t.children[id]
	}
	if id != t.cursor {
		panic("genChildren on a node not holding the board")
	}
	legal := t.board.LegalMoves(true, false)
	t.rand.Shuffle(len(legal), func(i, j int) { legal[i], legal[j] = legal[j], legal[i] })
	sort.SliceStable(legal, func(i, j int) bool { return legal[i].Value > legal[j].Value })
	if len(legal) > t.Branching {
		legal = legal[:t.Branching]
	}
	for _, m := range legal {
		kid := t.alloc(m, id)
		t.children[id] = append(t.children[id], kid)
	}
	return t.children[id]
}

// descend applies the child's move to the board and hands the board
// down: the cursor moves from the child's parent onto the child.
func (t *MCTS) descend(kid naughty) {
	n := t.nodeFromNaughty(kid)
	if n.parent != t.cursor {
		panic("descend into a node whose parent does not hold the board")
	}
	if _, err := t.board.Move(n.move); err != nil {
		panic("tree desynchronized from board: " + err.Error())
	}
	t.cursor = kid
}

// ascend is the inverse of descend: undo the cursor node's move and
// hand the board back to the parent.
func (t *MCTS) ascend() {
	n := t.nodeFromNaughty(t.cursor)
	if !n.parent.isValid() {
		panic("ascend above the root")
	}
	t.board.Undo()
	t.cursor = n.parent
}

// descendMove descends into the child matching m, lazily materializing
// a child for a legal-but-unexpanded move. Matching compares player,
// coordinates, direction and the get/pass flags; the heuristic value
// is excluded. Returns ErrAmbiguousMove when m is neither a known
// child nor currently legal.
func (t *MCTS) descendMove(m game.Move) (naughty, error) {
	for _, kid := range t.children[t.cursor] {
		if t.nodeFromNaughty(kid).move.Eq(m) {
			t.descend(kid)
			return kid, nil
		}
	}
	for _, legal := range t.board.LegalMoves(false, false) {
		if legal.Eq(m) {
			kid := t.alloc(legal, t.cursor)
			t.children[t.cursor] = append(t.children[t.cursor], kid)
			t.descend(kid)
			return kid, nil
		}
	}
	return nilNode, errors.WithMessage(ErrAmbiguousMove, "tree desynchronized")
}

// ucb1 returns the node's UCB1 score: w/n + sqrt(2·ln(t)/n), where n
// is the node's playout count, w the wins credited to the node's own
// mover, and t the summed playout count across all siblings. A
// never-visited node scores 0, which the selection policy prefers over
// any positive score.
func (t *MCTS) ucb1(id naughty) float32 {
	n := t.nodeFromNaughty(id)
	if n.stats.Total == 0 {
		return 0
	}
	var siblingTotal int32
	for _, kid := range t.children[n.parent] {
		siblingTotal += t.nodeFromNaughty(kid).stats.Total
	}
	nn := float32(n.stats.Total)
	w := float32(n.stats.Wins[n.move.Player])
	return w/nn + math32.Sqrt(2*math32.Log(float32(siblingTotal))/nn)
}

// uniformPick draws one of the candidate indices uniformly at random.
// Collect-then-draw keeps the tie-break policy independent of sort
// stability.
func (t *MCTS) uniformPick(cands []int) int {
	return cands[t.rand.Intn(len(cands))]
}
