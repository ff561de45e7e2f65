package route

import "fmt"

// Bits is the width of the output field.
const Bits = 32

// Slots is the bit slot table: for each bit position, the next lane a
// connection touching that bit may use.
type Slots [Bits]int

func checkSpan(a, b int) (lo, hi int) {
	lo, hi = min(a, b), max(a, b)
	if lo < 0 || hi >= Bits {
		panic(fmt.Sprintf("route: bit span %d..%d outside 0..%d", a, b, Bits-1))
	}
	return lo, hi
}

// Peek returns the lane a connection between bits a and b would get,
// without claiming it.
func (s *Slots) Peek(a, b int) int {
	lo, hi := checkSpan(a, b)
	m := 0
	for j := lo; j <= hi; j++ {
		m = max(m, s[j])
	}
	return m + 1
}

// Claim allocates a lane for a connection between bits a and b. Every
// slot in the span is raised past the returned lane, so later connections
// overlapping the span get a strictly larger lane.
func (s *Slots) Claim(a, b int) int {
	lane := s.Peek(a, b)
	lo, hi := checkSpan(a, b)
	for j := lo; j <= hi; j++ {
		s[j] = lane + 1
	}
	return lane
}

// Max returns the highest slot value.
func (s *Slots) Max() int {
	m := 0
	for _, v := range s {
		m = max(m, v)
	}
	return m
}
