package engine

import (
	"errors"
	"testing"
)

func startedSession(t *testing.T, levels ...*Level) (*Session, *MemoryPersistence, *recordingSync) {
	t.Helper()
	s, store, rec := newTestSession(levels...)
	if err := s.StartGame(0, StartOptions{}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	return s, store, rec
}

func TestDragOneStepPerEvent(t *testing.T) {
	s, _, _ := startedSession(t, dropLevel())
	d := NewDrag(s)

	if err := d.Begin(1); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// The pointer jumps three cells at once; the piece follows one cell per event.
	for i, want := range []int{1, 2, 3, 3} {
		got := d.Update(0, 3.2)
		if got.DY != want || got.DX != 0 {
			t.Fatalf("event %d: committed = %+v, want {0 %d}", i, got, want)
		}
	}

	// Nothing touches the board until the gesture ends.
	if p, _ := s.Piece(1); p.Y != 0 {
		t.Fatalf("piece moved before End: y=%d", p.Y)
	}

	if !d.End() {
		t.Fatal("End should commit the move")
	}
	if p, _ := s.Piece(1); p.X != 1 || p.Y != 3 {
		t.Errorf("piece at (%d,%d), want (1,3)", p.X, p.Y)
	}
	if st := s.State(); st.Moves != 3 || !st.Won {
		t.Errorf("state = %+v, want 3 moves and a win", st)
	}
	if d.Active() {
		t.Error("drag should be cleared after End")
	}
}

func TestDragRounding(t *testing.T) {
	s, _, _ := startedSession(t, pairLevel())
	d := NewDrag(s)
	_ = d.Begin(1)

	if got := d.Update(0, 0.4); !got.IsZero() {
		t.Errorf("0.4 cells should round to no step, got %+v", got)
	}
	if got := d.Update(0, 0.6); got != (Offset{DY: 1}) {
		t.Errorf("0.6 cells should round to one step, got %+v", got)
	}
	if got := d.Update(0, 0.2); !got.IsZero() {
		t.Errorf("moving back should retract the step, got %+v", got)
	}
}

func TestDragStopsAtObstruction(t *testing.T) {
	s, _, _ := startedSession(t, pairLevel())
	d := NewDrag(s)
	_ = d.Begin(2)

	// Piece 2 cannot pass piece 1 on its left.
	for range 3 {
		if got := d.Update(-2, 0); !got.IsZero() {
			t.Fatalf("blocked axis advanced to %+v", got)
		}
	}
	if d.End() {
		t.Error("zero offset must not commit a move")
	}
	if s.State().Moves != 0 {
		t.Errorf("moves = %d, want 0", s.State().Moves)
	}
}

func TestDragBothAxesInOneEvent(t *testing.T) {
	s, _, _ := startedSession(t, pairLevel())
	d := NewDrag(s)
	_ = d.Begin(2)

	if got := d.Update(1, 1); got != (Offset{DX: 1, DY: 1}) {
		t.Fatalf("committed = %+v, want {1 1}", got)
	}
	if !d.End() {
		t.Fatal("End should commit")
	}
	if p, _ := s.Piece(2); p.X != 2 || p.Y != 1 {
		t.Errorf("piece at (%d,%d), want (2,1)", p.X, p.Y)
	}
	if s.State().Moves != 2 {
		t.Errorf("moves = %d, want 2", s.State().Moves)
	}
	checkBoard(t, s)
}

func TestDragDetourCommitsNetOffset(t *testing.T) {
	s, _, _ := startedSession(t, pairLevel())
	d := NewDrag(s)
	_ = d.Begin(1)

	// Go around piece 2: down, right, right, up.
	d.Update(0, 1)
	d.Update(1, 1)
	d.Update(2, 1)
	if got := d.Update(2, 0); got != (Offset{DX: 2}) {
		t.Fatalf("committed = %+v, want {2 0}", got)
	}

	if !d.End() {
		t.Fatal("End should commit the detour")
	}
	if p, _ := s.Piece(1); p.X != 2 || p.Y != 0 {
		t.Errorf("piece at (%d,%d), want (2,0)", p.X, p.Y)
	}
	if s.State().Moves != 2 {
		t.Errorf("moves = %d, want Manhattan distance 2", s.State().Moves)
	}
	checkBoard(t, s)

	// The same displacement as a one-shot slide is a jump over piece 2.
	s2, _, _ := startedSession(t, pairLevel())
	if s2.AttemptMove(1, 2, 0) {
		t.Error("AttemptMove must not slide through piece 2")
	}
}

func TestDragCancelLeavesBoard(t *testing.T) {
	s, _, _ := startedSession(t, classicLevel())
	before := s.Board().Clone()
	d := NewDrag(s)
	_ = d.Begin(9)

	if got := d.Update(1, 0); got != (Offset{DX: 1}) {
		t.Fatalf("committed = %+v, want {1 0}", got)
	}
	if p, ok := d.Preview(); !ok || p.X != 1 {
		t.Errorf("Preview = %+v, %v", p, ok)
	}

	d.Cancel()
	if d.Active() || !d.Committed().IsZero() {
		t.Error("Cancel should clear the gesture")
	}
	if !before.Equal(s.Board()) {
		t.Error("Cancel changed the board")
	}
	if d.End() {
		t.Error("End after Cancel must not commit")
	}
	if s.State().Moves != 0 {
		t.Errorf("moves = %d, want 0", s.State().Moves)
	}
}

func TestDragBeginErrors(t *testing.T) {
	s, _, _ := startedSession(t, pairLevel())
	d := NewDrag(s)

	if err := d.Begin(99); !errors.Is(err, ErrUnknownPiece) {
		t.Errorf("Begin(99) = %v, want ErrUnknownPiece", err)
	}

	_ = d.Begin(1)
	if err := d.Begin(2); !errors.Is(err, ErrStateViolation) {
		t.Errorf("second Begin = %v, want ErrStateViolation", err)
	}
	d.Cancel()

	s.Pause()
	if err := d.Begin(1); !errors.Is(err, ErrStateViolation) {
		t.Errorf("Begin while paused = %v, want ErrStateViolation", err)
	}
}

func TestDragEndAfterPause(t *testing.T) {
	s, _, _ := startedSession(t, pairLevel())
	d := NewDrag(s)
	_ = d.Begin(1)
	d.Update(0, 1)

	s.Pause()
	if d.End() {
		t.Error("End while paused must not commit")
	}
	if p, _ := s.Piece(1); p.Y != 0 {
		t.Errorf("piece moved to y=%d while paused", p.Y)
	}
}
