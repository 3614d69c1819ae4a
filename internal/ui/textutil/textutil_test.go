package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "notes.md", 20, "notes.md"},
		{"exact", "notes.md", 8, "notes.md"},
		{"cut", "tail -f /var/log/syslog", 10, "tail -f /…"},
		{"one column", "abc", 1, "…"},
		{"zero", "abc", 0, ""},
		{"wide runes", "日本語テキスト", 6, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, VisualWidth(got), max(tt.width, 0))
		})
	}
}
