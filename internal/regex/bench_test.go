package regex

import "testing"

func BenchmarkLiteralVsRegex(b *testing.B) {
	// Test data - typical web page lines
	testLines := []string{
		`<html><head><title>6.005 Problem Set 0</title></head>`,
		`<p>Software Construction</p>`,
		`<a href="/6.005/www/sp14/">Home</a>`,
		`<div class="footer">MIT</div>`,
		`Due: Thursday, February 13, 2014`,
	}

	b.Run("Literal", func(b *testing.B) {
		r, _ := NewLiteral("6.005", Default)
		b.ResetTimer()
		matches := 0
		for i := 0; i < b.N; i++ {
			for _, line := range testLines {
				if r.MatchString(line) {
					matches++
				}
			}
		}
		_ = matches
	})

	b.Run("Regex", func(b *testing.B) {
		r, _ := New(`6\.005`, Default)
		b.ResetTimer()
		matches := 0
		for i := 0; i < b.N; i++ {
			for _, line := range testLines {
				if r.MatchString(line) {
					matches++
				}
			}
		}
		_ = matches
	})
}
