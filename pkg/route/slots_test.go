package route

import (
	"math/rand/v2"
	"testing"
)

func TestSlotsClaim(t *testing.T) {
	var s Slots
	steps := []struct {
		a, b int
		want int
	}{
		{2, 26, 1},
		{4, 22, 3},
		{30, 31, 1},
		{26, 31, 3},
		{0, 0, 1},
		{12, 12, 5},
	}

	for _, st := range steps {
		if got := s.Claim(st.a, st.b); got != st.want {
			t.Errorf("Claim(%d, %d) = %d, want %d", st.a, st.b, got, st.want)
		}
	}
	if got := s.Max(); got != 6 {
		t.Errorf("Max() = %d, want 6", got)
	}
}

func TestSlotsPeekDoesNotClaim(t *testing.T) {
	var s Slots
	s.Claim(3, 5)
	if got := s.Peek(4, 4); got != 3 {
		t.Errorf("Peek(4, 4) = %d, want 3", got)
	}
	if got := s.Peek(4, 4); got != 3 {
		t.Errorf("second Peek(4, 4) = %d, want 3", got)
	}
}

func TestSlotsClaimIsOrderIndependent(t *testing.T) {
	var a, b Slots
	if la, lb := a.Claim(5, 9), b.Claim(9, 5); la != lb || a != b {
		t.Errorf("Claim(5, 9) and Claim(9, 5) disagree: %d/%v vs %d/%v", la, a, lb, b)
	}
}

func TestSlotsOverlappingSpansNeverShareLane(t *testing.T) {
	type claim struct{ lo, hi, lane int }

	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		var s Slots
		var claims []claim
		for i := 0; i < 40; i++ {
			a, b := rng.IntN(Bits), rng.IntN(Bits)
			lane := s.Claim(a, b)
			claims = append(claims, claim{min(a, b), max(a, b), lane})
		}
		for i, c := range claims {
			for _, d := range claims[:i] {
				overlap := c.lo <= d.hi && d.lo <= c.hi
				if overlap && c.lane == d.lane {
					t.Fatalf("round %d: spans %d..%d and %d..%d share lane %d", round, d.lo, d.hi, c.lo, c.hi, c.lane)
				}
			}
		}
	}
}

func TestSlotsOutOfFieldPanics(t *testing.T) {
	for _, span := range [][2]int{{-1, 3}, {0, Bits}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Claim(%d, %d) did not panic", span[0], span[1])
				}
			}()
			var s Slots
			s.Claim(span[0], span[1])
		}()
	}
}
