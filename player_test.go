package cuboid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuboidai/cuboid/game"
)

func testConfig() Config {
	conf := DefaultConfig()
	conf.MCTS.Board = game.Config{MaxX: 4, MaxY: 4, MaxPiece: 2, MaxMoves: 20}
	conf.MCTS.Seed = 42
	conf.Think = 30 * time.Millisecond
	conf.ThinkGet = 15 * time.Millisecond
	return conf
}

func TestConfigIsValid(t *testing.T) {
	assert.True(t, DefaultConfig().IsValid())

	conf := DefaultConfig()
	conf.ThinkGet = conf.Think
	assert.False(t, conf.IsValid(), "the get slice must leave time for the put")
}

func TestReadStateReplaysOpponent(t *testing.T) {
	p := NewPlayer(game.Black, testConfig())

	// before anyone moved
	over, err := p.ReadState("2 2")
	require.NoError(t, err)
	assert.False(t, over)
	assert.Empty(t, p.Tree().Board().History())

	// White placed a vertical piece on (1,1)
	over, err = p.ReadState("1 2 1 1 1 1 1")
	require.NoError(t, err)
	assert.False(t, over)

	h := p.Tree().Board().History()
	require.Len(t, h, 1)
	assert.True(t, h[0].Eq(game.Move{Player: game.White, X: 0, Y: 0, Dir: game.DirZ}))
}

func TestReadStateGameOver(t *testing.T) {
	p := NewPlayer(game.White, testConfig())
	over, err := p.ReadState("-1")
	require.NoError(t, err)
	assert.True(t, over)
}

func TestDecideMove(t *testing.T) {
	p := NewPlayer(game.White, testConfig())
	_, err := p.ReadState("2 2")
	require.NoError(t, err)

	put, get := p.DecideMove()
	assert.Nil(t, get, "a fresh pool needs no retrieval")
	assert.Equal(t, game.White, put.Player)
	assert.False(t, put.IsGet)

	h := p.Tree().Board().History()
	require.Len(t, h, 1)
	assert.True(t, h[0].Eq(put))
}

type countingRecorder struct {
	frames  int
	flushed bool
}

func (r *countingRecorder) Encode(b *game.Board) error { r.frames++; return nil }
func (r *countingRecorder) Flush() error               { r.flushed = true; return nil }

func TestRunRecordsFrames(t *testing.T) {
	conf := testConfig()
	rec := &countingRecorder{}
	conf.Record = rec

	p := NewPlayer(game.White, conf)
	in := strings.NewReader("2 2\n-1\n")
	var out bytes.Buffer
	require.NoError(t, p.Run(in, &out))

	assert.Equal(t, 1, rec.frames, "one frame for our single put")
	assert.True(t, rec.flushed)
}

func TestRunOneExchange(t *testing.T) {
	p := NewPlayer(game.White, testConfig())

	in := strings.NewReader("2 2\n-1\n")
	var out bytes.Buffer
	require.NoError(t, p.Run(in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Len(t, strings.Fields(lines[0]), 4, "a put is four corner coordinates")
}
