package mcts

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuboidai/cuboid/game"
)

func testConfig() Config {
	return Config{
		Board:           game.Config{MaxX: 4, MaxY: 4, MaxPiece: 2, MaxMoves: 20},
		Branching:       4,
		ExpandThreshold: 9,
		PlayoutDepth:    10,
		Seed:            42,
	}
}

func TestNewPreExpandsRoot(t *testing.T) {
	tr := New(testConfig())

	kids := tr.Children(tr.confirmed)
	require.NotEmpty(t, kids)
	assert.LessOrEqual(t, len(kids), tr.Branching)
	assert.True(t, tr.Confirmed().Confirmed())
	assert.Empty(t, tr.Board().History())

	// children arrive best-first
	for i := 1; i < len(kids); i++ {
		prev := tr.nodeFromNaughty(kids[i-1]).move.Value
		cur := tr.nodeFromNaughty(kids[i]).move.Value
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestNewPanicsOnBadConfig(t *testing.T) {
	conf := testConfig()
	conf.Branching = 0
	assert.Panics(t, func() { New(conf) })
}

func TestRunOneIteration(t *testing.T) {
	conf := testConfig()
	tr := New(conf)
	kids := tr.Children(tr.confirmed)

	tr.RunOneIteration()

	// the confirmed node's own statistics never move
	assert.Equal(t, PlayoutResult{}, tr.Confirmed().Stats())

	// exactly one playout landed below the root
	var total int32
	for _, kid := range kids {
		total += tr.nodeFromNaughty(kid).stats.Total
	}
	assert.Equal(t, int32(1), total)

	// the board came back to the confirmed position
	assert.Equal(t, tr.confirmed, tr.cursor)
	want := game.NewBoard(conf.Board)
	assert.Empty(t, cmp.Diff(want, tr.board, cmp.AllowUnexported(game.Board{})))
}

func TestRunManyIterations(t *testing.T) {
	conf := testConfig()
	tr := New(conf)
	kids := tr.Children(tr.confirmed)

	const iters = 200
	for i := 0; i < iters; i++ {
		tr.RunOneIteration()
	}

	var total int32
	for _, kid := range kids {
		n := tr.nodeFromNaughty(kid)
		total += n.stats.Total
		assert.LessOrEqual(t, n.stats.Wins[0]+n.stats.Wins[1], n.stats.Total)
	}
	assert.Equal(t, int32(iters), total)

	// visited nodes got expanded along the way
	assert.Greater(t, tr.Nodes(), 1+len(kids))
	assert.Empty(t, tr.Board().History())
}

func TestUCB1(t *testing.T) {
	tr := New(testConfig())
	kids := tr.Children(tr.confirmed)
	require.GreaterOrEqual(t, len(kids), 2)

	tr.nodes[kids[0]].stats = PlayoutResult{Total: 10, Wins: [2]int32{6, 2}}
	assert.Equal(t, float32(0), tr.ucb1(kids[1]), "an unvisited node scores 0")

	p := tr.nodes[kids[0]].move.Player
	w := float32(tr.nodes[kids[0]].stats.Wins[p])
	want := w/10 + math32.Sqrt(2*math32.Log(10)/10)
	assert.InDelta(t, want, tr.ucb1(kids[0]), 1e-6)
}

func TestSelectPrefersUnvisited(t *testing.T) {
	tr := New(testConfig())
	kids := tr.Children(tr.confirmed)
	require.GreaterOrEqual(t, len(kids), 2)

	// every child but the last is heavily visited and winning
	for _, kid := range kids[:len(kids)-1] {
		tr.nodes[kid].stats = PlayoutResult{Total: 50, Wins: [2]int32{50, 0}}
	}
	unvisited := kids[len(kids)-1]

	tr.selectLeaf()
	assert.Equal(t, unvisited, tr.cursor)

	tr.backup(PlayoutResult{})
	assert.Equal(t, tr.confirmed, tr.cursor)
}

func TestDecide(t *testing.T) {
	tr := New(testConfig())
	kids := tr.Children(tr.confirmed)
	for i := 0; i < 50; i++ {
		tr.RunOneIteration()
	}

	idx := tr.Decide()
	require.GreaterOrEqual(t, idx, 0)
	require.Less(t, idx, len(kids))

	assert.Equal(t, kids[idx], tr.confirmed)
	assert.True(t, tr.Confirmed().Confirmed())
	h := tr.Board().History()
	require.Len(t, h, 1)
	assert.True(t, h[0].Eq(tr.Confirmed().Move()))
}

func TestDecideForcedWin(t *testing.T) {
	conf := testConfig()
	// on a 2-deep board a Y placement wins outright
	conf.Board = game.Config{MaxX: 2, MaxY: 2, MaxPiece: 2, MaxMoves: 10}
	tr := New(conf)

	tr.Decide()
	m := tr.Confirmed().Move()
	assert.Equal(t, game.DirY, m.Dir)
	assert.GreaterOrEqual(t, m.Value, game.ForcedWin)
	assert.NotEqual(t, game.Undetermined, tr.Board().Judge())
}

func TestDecideManually(t *testing.T) {
	tr := New(testConfig())
	kids := tr.Children(tr.confirmed)

	// pick a legal move the expansion did not keep
	var outside game.Move
	var found bool
nextLegal:
	for _, legal := range tr.Board().LegalMoves(false, false) {
		for _, kid := range kids {
			if tr.nodeFromNaughty(kid).move.Eq(legal) {
				continue nextLegal
			}
		}
		outside, found = legal, true
		break
	}
	require.True(t, found)

	require.NoError(t, tr.DecideManually(outside))
	assert.True(t, tr.Confirmed().Move().Eq(outside))
	require.Len(t, tr.Board().History(), 1)

	// an impossible move desynchronizes the tree
	bogus := game.Move{Player: game.Black, X: 3, Y: 3, Dir: game.DirX}
	err := tr.DecideManually(bogus)
	require.Error(t, err)
	assert.Equal(t, ErrAmbiguousMove, errors.Cause(err))
}

func TestToDot(t *testing.T) {
	tr := New(testConfig())
	for i := 0; i < 10; i++ {
		tr.RunOneIteration()
	}

	dot := tr.ToDot()
	assert.True(t, strings.HasPrefix(dot, "digraph gametree"))
	assert.Contains(t, dot, "Playouts")
	assert.Equal(t, tr.Nodes(), strings.Count(dot, "<TABLE"))
}
