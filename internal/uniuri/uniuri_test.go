package uniuri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	seen := make(map[string]struct{}, 1000)

	for range 1000 {
		s := New()
		assert.Len(t, s, StdLen)

		for _, r := range s {
			assert.True(t, strings.ContainsRune(string(StdChars), r), "unexpected %q", r)
		}

		_, dup := seen[s]
		assert.False(t, dup, "duplicate %s", s)
		seen[s] = struct{}{}
	}
}

func TestNewLenChars(t *testing.T) {
	assert.Empty(t, NewLen(0))
	assert.Len(t, NewLen(64), 64)

	s := NewLenChars(100, []byte("ab"))
	assert.Len(t, s, 100)
	assert.Empty(t, strings.Trim(s, "ab"))

	assert.Panics(t, func() { NewLenChars(4, []byte("a")) })
}

func TestFileName(t *testing.T) {
	tests := []struct {
		original string
		ext      string
	}{
		{"invoice.PDF", ".pdf"},
		{"../../etc/passwd", ""},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			name := FileName(tt.original)
			assert.Len(t, name, StdLen+len(tt.ext))
			assert.True(t, strings.HasSuffix(name, tt.ext))
			assert.NotContains(t, name, "/")
		})
	}
}
