package sensor

import "testing"

type fixedSource int

func (f fixedSource) Temperature() int { return int(f) }

func TestSimulated_PassesThrough(t *testing.T) {
	s := NewSimulated(fixedSource(17))
	if got := s.ReadTemperature(); got != 17 {
		t.Fatalf("ReadTemperature() = %d, want 17", got)
	}
}
