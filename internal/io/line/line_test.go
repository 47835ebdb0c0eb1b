package line

import "testing"

func TestLineString(t *testing.T) {
	l := New("A", 0, "hello 6.005 world")
	if got := l.String(); got != "A:0:hello 6.005 world" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestLineIsComparable(t *testing.T) {
	a := New("A", 1, "bye")
	b := Line{Source: "A", Number: 1, Text: "bye"}
	if a != b {
		t.Errorf("expected %v == %v", a, b)
	}
	seen := map[Line]bool{a: true}
	if !seen[b] {
		t.Error("expected line to be usable as map key")
	}
}
