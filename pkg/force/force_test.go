package force_test

import (
	"testing"

	"laptudirm.com/x/bughouse/pkg/force"
)

func TestOpposite(t *testing.T) {
	if force.White.Opposite() != force.Black {
		t.Errorf("White.Opposite() != Black")
	}
	if force.Black.Opposite() != force.White {
		t.Errorf("Black.Opposite() != White")
	}
}

func TestOppositeOfNeutralPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Neutral.Opposite(): expected panic")
		}
	}()
	force.Neutral.Opposite()
}

func TestLetter(t *testing.T) {
	if got := force.White.Letter(); got != 'w' {
		t.Errorf("White.Letter() = %q, want 'w'", got)
	}
	if got := force.Black.Letter(); got != 'x' {
		t.Errorf("Black.Letter() = %q, want 'x'", got)
	}
}
