package gif

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuboidai/cuboid/game"
)

func TestEncodeGameRecord(t *testing.T) {
	conf := game.Config{MaxX: 4, MaxY: 4, MaxPiece: 4, MaxMoves: 20}
	b := game.NewBoard(conf)

	var buf bytes.Buffer
	enc := NewEncoder(2000, 2000)
	enc.Writer = &buf

	require.NoError(t, enc.Encode(b))

	moves := []game.Move{
		{Player: game.White, X: 1, Y: 0, Dir: game.DirY},
		{Player: game.Black, X: 3, Y: 3, Dir: game.DirZ},
		{Player: game.White, X: 1, Y: 2, Dir: game.DirY},
	}
	for _, m := range moves {
		_, err := b.Move(m)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(b))
	}
	require.NotEqual(t, game.Undetermined, b.Judge(), "the record should end decided")

	require.NoError(t, enc.Flush())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("GIF8")), "not a GIF stream")
	assert.Len(t, enc.out.Image, len(moves)+1)
	assert.Equal(t, 300, enc.out.Delay[len(moves)], "the decided frame lingers")
}
