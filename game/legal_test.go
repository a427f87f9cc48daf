package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func containsMove(moves []Move, m Move) bool {
	for _, c := range moves {
		if c.Eq(m) {
			return true
		}
	}
	return false
}

func TestMoverPhases(t *testing.T) {
	conf := Config{MaxX: 4, MaxY: 4, MaxPiece: 1, MaxMoves: 20}
	b := NewBoard(conf)

	if p, mustGet := b.Mover(); p != White || mustGet {
		t.Errorf("empty board mover = %v mustGet=%t", p, mustGet)
	}

	mustMove(t, b, Move{Player: White, X: 0, Y: 0, Dir: DirX})
	if p, mustGet := b.Mover(); p != Black || mustGet {
		t.Errorf("after White put: %v mustGet=%t", p, mustGet)
	}

	mustMove(t, b, Move{Player: Black, X: 0, Y: 1, Dir: DirX})
	// White's pool is empty now
	if p, mustGet := b.Mover(); p != White || !mustGet {
		t.Errorf("exhausted pool: %v mustGet=%t", p, mustGet)
	}

	mustMove(t, b, Move{Player: White, X: 0, Y: 0, Dir: DirX, IsGet: true})
	// a get is followed by the same player's placement
	if p, mustGet := b.Mover(); p != White || mustGet {
		t.Errorf("after own get: %v mustGet=%t", p, mustGet)
	}

	mustMove(t, b, Move{Player: White, X: 0, Y: 2, Dir: DirX})
	if p, mustGet := b.Mover(); p != Black || !mustGet {
		t.Errorf("after re-placement: %v mustGet=%t", p, mustGet)
	}

	// inference is a pure function of state, so it survives Undo
	b.Undo()
	if p, mustGet := b.Mover(); p != White || mustGet {
		t.Errorf("after undo of put: %v mustGet=%t", p, mustGet)
	}
	b.Undo()
	if p, mustGet := b.Mover(); p != White || !mustGet {
		t.Errorf("after undo of get: %v mustGet=%t", p, mustGet)
	}
}

func TestLegalPutsFull(t *testing.T) {
	b := NewBoard(smallConf)

	legal := b.LegalMoves(false, false)
	// 4×4 empty board: 12 X, 12 Y, 16 Z placements
	if len(legal) != 40 {
		t.Errorf("empty board legal moves = %d, want 40", len(legal))
	}
	for _, m := range legal {
		if m.Player != White || m.IsGet || m.IsPass {
			t.Errorf("unexpected move %v on empty board", m)
		}
	}

	mustMove(t, b, Move{Player: White, X: 1, Y: 1, Dir: DirZ})
	legal = b.LegalMoves(false, false)
	for _, m := range legal {
		if m.Player != Black {
			t.Errorf("mover should be Black, got %v", m)
		}
	}
	// bridging onto the stack would float
	if containsMove(legal, Move{Player: Black, X: 1, Y: 1, Dir: DirX}) {
		t.Error("floating placement (1,1,X) listed")
	}
	if containsMove(legal, Move{Player: Black, X: 0, Y: 1, Dir: DirX}) {
		t.Error("floating placement (0,1,X) listed")
	}
	// stacking vertically on top is fine
	if !containsMove(legal, Move{Player: Black, X: 1, Y: 1, Dir: DirZ}) {
		t.Error("stacking placement (1,1,Z) missing")
	}
}

func TestLegalPutsOnlyTouch(t *testing.T) {
	b := NewBoard(smallConf)
	mustMove(t, b, Move{Player: White, X: 1, Y: 1, Dir: DirZ})

	touch := b.LegalMoves(false, true)
	full := b.LegalMoves(false, false)
	if len(touch) == 0 || len(touch) >= len(full) {
		t.Fatalf("touch moves = %d, full = %d", len(touch), len(full))
	}
	for _, m := range touch {
		if !containsMove(full, m) {
			t.Errorf("touch move %v not in the full enumeration", m)
		}
	}
	if !containsMove(touch, Move{Player: Black, X: 2, Y: 1, Dir: DirX}) {
		t.Error("adjacent placement (2,1,X) missing")
	}
	if !containsMove(touch, Move{Player: Black, X: 0, Y: 1, Dir: DirZ}) {
		t.Error("adjacent placement (0,1,Z) missing")
	}
	// far corner is not adjacent to any stack
	if containsMove(touch, Move{Player: Black, X: 3, Y: 3, Dir: DirZ}) {
		t.Error("remote placement (3,3,Z) listed")
	}
}

func TestOpeningSequenceDefaultBoard(t *testing.T) {
	b := NewBoard(DefaultConfig())
	mustMove(t, b, Move{Player: White, X: 0, Y: 0, Dir: DirY})
	mustMove(t, b, Move{Player: Black, X: 5, Y: 5, Dir: DirZ})

	legal := b.LegalMoves(false, false)
	// (6,5) and (7,5) are level ground next to the stack
	if !containsMove(legal, Move{Player: White, X: 6, Y: 5, Dir: DirX}) {
		t.Error("placement (6,5,X) missing")
	}
	// bridging off the (5,5) stack would float
	if containsMove(legal, Move{Player: White, X: 5, Y: 5, Dir: DirX}) {
		t.Error("floating placement (5,5,X) listed")
	}

	b.Undo()
	b.Undo()
	if diff := cmp.Diff(NewBoard(DefaultConfig()), b, cmp.AllowUnexported(Board{})); diff != "" {
		t.Errorf("double undo did not reproduce the empty board:\n%s", diff)
	}
}

func TestLegalGets(t *testing.T) {
	conf := Config{MaxX: 4, MaxY: 4, MaxPiece: 2, MaxMoves: 20}
	b := NewBoard(conf)
	mustMove(t, b, Move{Player: White, X: 0, Y: 0, Dir: DirX})
	mustMove(t, b, Move{Player: Black, X: 0, Y: 3, Dir: DirX})
	mustMove(t, b, Move{Player: White, X: 2, Y: 2, Dir: DirZ})
	mustMove(t, b, Move{Player: Black, X: 0, Y: 0, Dir: DirX})

	// White's pool is exhausted, and the (0,0,X) piece is buried
	legal := b.LegalMoves(false, false)
	if len(legal) != 1 {
		t.Fatalf("legal gets = %v", legal)
	}
	want := Move{Player: White, X: 2, Y: 2, Dir: DirZ, IsGet: true}
	if !legal[0].Eq(want) {
		t.Errorf("got %v, want %v", legal[0], want)
	}
}

func TestLegalPutsExcludeVacated(t *testing.T) {
	conf := Config{MaxX: 4, MaxY: 4, MaxPiece: 1, MaxMoves: 20}
	b := NewBoard(conf)
	mustMove(t, b, Move{Player: White, X: 0, Y: 0, Dir: DirX})
	mustMove(t, b, Move{Player: Black, X: 0, Y: 1, Dir: DirX})
	mustMove(t, b, Move{Player: White, X: 0, Y: 0, Dir: DirX, IsGet: true})

	legal := b.LegalMoves(false, false)
	if containsMove(legal, Move{Player: White, X: 0, Y: 0, Dir: DirX}) {
		t.Error("the just-vacated cell must not be listed")
	}
	// same cell, different orientation, is a different placement
	if !containsMove(legal, Move{Player: White, X: 0, Y: 0, Dir: DirZ}) {
		t.Error("placement (0,0,Z) missing")
	}
}
