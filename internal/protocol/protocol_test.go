package protocol

import "testing"

func TestFormatLine(t *testing.T) {
	got := FormatLine("http://example.org/a", 7, "hello 6.005 world")
	want := "http://example.org/a:7:hello 6.005 world"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Text containing the delimiter is emitted verbatim.
	got = FormatLine("A", 0, "a:b:c")
	if got != "A:0:a:b:c" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestFormatSummary(t *testing.T) {
	for count, want := range map[int]string{
		0: "0 lines matched",
		1: "1 lines matched",
		42: "42 lines matched",
	} {
		if got := FormatSummary(count); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
