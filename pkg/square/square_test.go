package square_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/force"
	"laptudirm.com/x/bughouse/pkg/square"
)

func TestNewFromStringRoundTrip(t *testing.T) {
	tests := []string{"a1", "e4", "h8", "d5", "-"}
	for _, s := range tests {
		sq, ok := square.NewFromString(s)
		if !ok {
			t.Fatalf("NewFromString(%q): not ok", s)
		}
		if got := sq.String(); got != s {
			t.Errorf("NewFromString(%q).String() = %q", s, got)
		}
	}
}

func TestNewFromStringInvalid(t *testing.T) {
	tests := []string{"", "i1", "a9", "a", "e44"}
	for _, s := range tests {
		if _, ok := square.NewFromString(s); ok {
			t.Errorf("NewFromString(%q): expected not ok", s)
		}
	}
}

func TestSubjectiveRank(t *testing.T) {
	e4, _ := square.NewFromString("e4")
	if got := e4.SubjectiveRank(force.White); got != square.Rank4 {
		t.Errorf("White SubjectiveRank(e4) = %v, want Rank4", got)
	}
	if got := e4.SubjectiveRank(force.Black); got != square.Rank5 {
		t.Errorf("Black SubjectiveRank(e4) = %v, want Rank5", got)
	}
}

func TestOffset(t *testing.T) {
	e4, _ := square.NewFromString("e4")

	if got, ok := e4.Offset(1, 1); !ok || got.String() != "f5" {
		t.Errorf("e4.Offset(1, 1) = %v, %v, want f5, true", got, ok)
	}

	h8, _ := square.NewFromString("h8")
	if _, ok := h8.Offset(1, 1); ok {
		t.Errorf("h8.Offset(1, 1): expected to fall off the board")
	}
}

func TestTowards(t *testing.T) {
	if df, dr := square.Towards(force.White); df != 0 || dr != 1 {
		t.Errorf("Towards(White) = %d, %d, want 0, 1", df, dr)
	}
	if df, dr := square.Towards(force.Black); df != 0 || dr != -1 {
		t.Errorf("Towards(Black) = %d, %d, want 0, -1", df, dr)
	}
}
