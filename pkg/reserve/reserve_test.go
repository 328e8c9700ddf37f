package reserve_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/reserve"
)

func TestAddTakeCount(t *testing.T) {
	r := reserve.New()
	r.Add(piece.Pawn)
	r.Add(piece.Pawn)
	r.Add(piece.Knight)

	if got := r.Count(piece.Pawn); got != 2 {
		t.Errorf("Count(Pawn) = %d, want 2", got)
	}
	if got := r.Count(piece.Knight); got != 1 {
		t.Errorf("Count(Knight) = %d, want 1", got)
	}
	if got := r.Count(piece.Rook); got != 0 {
		t.Errorf("Count(Rook) = %d, want 0", got)
	}

	r.Take(piece.Pawn)
	if got := r.Count(piece.Pawn); got != 1 {
		t.Errorf("Count(Pawn) after Take = %d, want 1", got)
	}
}

func TestTakeUnavailablePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Take of unavailable kind: expected panic")
		}
	}()
	r := reserve.New()
	r.Take(piece.Queen)
}

func TestCloneIsIndependent(t *testing.T) {
	r := reserve.New()
	r.Add(piece.Bishop)

	clone := r.Clone()
	clone.Add(piece.Bishop)

	if got := r.Count(piece.Bishop); got != 1 {
		t.Errorf("original Count(Bishop) = %d, want 1 (clone must not alias)", got)
	}
	if got := clone.Count(piece.Bishop); got != 2 {
		t.Errorf("clone Count(Bishop) = %d, want 2", got)
	}
}

func TestTotal(t *testing.T) {
	r := reserve.New()
	r.Add(piece.Pawn)
	r.Add(piece.Pawn)
	r.Add(piece.Rook)

	if got := r.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
}
