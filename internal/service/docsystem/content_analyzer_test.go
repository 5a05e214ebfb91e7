package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentAnalyzer_Counts(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name      string
		text      string
		wantWords int
		wantChars int
		wantLines int
	}{
		{name: "empty", text: "", wantWords: 0, wantChars: 0, wantLines: 1},
		{name: "runs of whitespace", text: "hello   world\n\nfoo", wantWords: 3, wantChars: 18, wantLines: 3},
		{name: "trailing newline", text: "one\n", wantWords: 1, wantChars: 4, wantLines: 2},
		{name: "tabs", text: "a\tb\tc", wantWords: 3, wantChars: 5, wantLines: 1},
		{name: "multibyte counts bytes", text: "café", wantWords: 1, wantChars: 5, wantLines: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantWords, analyzer.CountWords(tt.text))
			assert.Equal(t, tt.wantChars, analyzer.CountCharacters(tt.text))
			assert.Equal(t, tt.wantLines, analyzer.CountLines(tt.text))
		})
	}
}

func TestContentAnalyzer_Hash(t *testing.T) {
	analyzer := NewContentAnalyzer()

	h := analyzer.Hash("body text")
	assert.Len(t, h, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", h)
	assert.Equal(t, h, analyzer.Hash("body text"))
	assert.NotEqual(t, h, analyzer.Hash("body text."))

	// xxhash64 of the empty input
	assert.Equal(t, "ef46db3751d8e999", analyzer.Hash(""))
}
