package notation_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/castling"
	"laptudirm.com/x/bughouse/pkg/notation"
	"laptudirm.com/x/bughouse/pkg/piece"
	"laptudirm.com/x/bughouse/pkg/square"
)

func mustSquare(t *testing.T, s string) square.Square {
	t.Helper()
	sq, ok := square.NewFromString(s)
	if !ok {
		t.Fatalf("square %q: invalid", s)
	}
	return sq
}

func TestParseAlgebraicPawnMove(t *testing.T) {
	p, err := notation.ParseAlgebraic("e4")
	if err != nil {
		t.Fatalf("ParseAlgebraic(e4): %v", err)
	}
	if p.Kind != notation.KindMove || p.PieceKind != piece.Pawn {
		t.Errorf("e4: got Kind=%v PieceKind=%v", p.Kind, p.PieceKind)
	}
	if p.To != mustSquare(t, "e4") {
		t.Errorf("e4: To = %v, want e4", p.To)
	}
}

func TestParseAlgebraicDisambiguatedCapture(t *testing.T) {
	p, err := notation.ParseAlgebraic("Nbxd2+")
	if err != nil {
		t.Fatalf("ParseAlgebraic(Nbxd2+): %v", err)
	}
	if p.PieceKind != piece.Knight || !p.Capture || !p.Check {
		t.Errorf("Nbxd2+: got PieceKind=%v Capture=%v Check=%v", p.PieceKind, p.Capture, p.Check)
	}
	if p.DisambigFile != square.FileB {
		t.Errorf("Nbxd2+: DisambigFile = %v, want FileB", p.DisambigFile)
	}
	if p.To != mustSquare(t, "d2") {
		t.Errorf("Nbxd2+: To = %v, want d2", p.To)
	}
}

func TestParseAlgebraicDrop(t *testing.T) {
	p, err := notation.ParseAlgebraic("N@f3")
	if err != nil {
		t.Fatalf("ParseAlgebraic(N@f3): %v", err)
	}
	if p.Kind != notation.KindDrop || p.PieceKind != piece.Knight {
		t.Errorf("N@f3: got Kind=%v PieceKind=%v", p.Kind, p.PieceKind)
	}
	if p.To != mustSquare(t, "f3") {
		t.Errorf("N@f3: To = %v, want f3", p.To)
	}
}

func TestParseAlgebraicDuck(t *testing.T) {
	p, err := notation.ParseAlgebraic("@e5")
	if err != nil {
		t.Fatalf("ParseAlgebraic(@e5): %v", err)
	}
	if p.Kind != notation.KindDuck || p.To != mustSquare(t, "e5") {
		t.Errorf("@e5: got Kind=%v To=%v", p.Kind, p.To)
	}
}

func TestParseAlgebraicCastle(t *testing.T) {
	p, err := notation.ParseAlgebraic("O-O")
	if err != nil {
		t.Fatalf("ParseAlgebraic(O-O): %v", err)
	}
	if p.Kind != notation.KindCastle || p.CastleSide != castling.HSide {
		t.Errorf("O-O: got Kind=%v CastleSide=%v", p.Kind, p.CastleSide)
	}

	p, err = notation.ParseAlgebraic("O-O-O")
	if err != nil {
		t.Fatalf("ParseAlgebraic(O-O-O): %v", err)
	}
	if p.Kind != notation.KindCastle || p.CastleSide != castling.ASide {
		t.Errorf("O-O-O: got Kind=%v CastleSide=%v", p.Kind, p.CastleSide)
	}
}

func TestParseAlgebraicPromotion(t *testing.T) {
	p, err := notation.ParseAlgebraic("e8=Q")
	if err != nil {
		t.Fatalf("ParseAlgebraic(e8=Q): %v", err)
	}
	if !p.HasPromotion || p.UpgradeTo != piece.Queen || p.StealSource != square.None {
		t.Errorf("e8=Q: got HasPromotion=%v UpgradeTo=%v StealSource=%v", p.HasPromotion, p.UpgradeTo, p.StealSource)
	}
}

func TestParseAlgebraicStealPromotion(t *testing.T) {
	p, err := notation.ParseAlgebraic("e8/Rc1")
	if err != nil {
		t.Fatalf("ParseAlgebraic(e8/Rc1): %v", err)
	}
	if !p.HasPromotion || p.UpgradeTo != piece.Rook {
		t.Errorf("e8/Rc1: got HasPromotion=%v UpgradeTo=%v", p.HasPromotion, p.UpgradeTo)
	}
	if p.StealSource != mustSquare(t, "c1") {
		t.Errorf("e8/Rc1: StealSource = %v, want c1", p.StealSource)
	}
}

func TestParseAlgebraicInvalid(t *testing.T) {
	tests := []string{"", "zz9", "Nxz9", "e8/R"}
	for _, s := range tests {
		if _, err := notation.ParseAlgebraic(s); err == nil {
			t.Errorf("ParseAlgebraic(%q): expected error", s)
		}
	}
}
