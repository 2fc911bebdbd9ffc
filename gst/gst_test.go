package gst

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilescan/tilescan"
)

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		initial int
		minimum int
		want    []tilescan.Match
	}{
		{
			name:    "single shared substring",
			pattern: "lower",
			text:    "yellow",
			initial: 3,
			minimum: 2,
			want: []tilescan.Match{
				{PatternIndex: 0, TextIndex: 3, Length: 3},
			},
		},
		{
			name:    "two disjoint tiles",
			pattern: "lowerlow",
			text:    "yellow lowlow",
			initial: 3,
			minimum: 2,
			want: []tilescan.Match{
				{PatternIndex: 0, TextIndex: 3, Length: 3},
				{PatternIndex: 5, TextIndex: 7, Length: 3},
			},
		},
		{
			name:    "identical sequences",
			pattern: "abcdef",
			text:    "abcdef",
			initial: 3,
			minimum: 2,
			want: []tilescan.Match{
				{PatternIndex: 0, TextIndex: 0, Length: 6},
			},
		},
		{
			name:    "long match triggers threshold growth",
			pattern: "abcdefghij",
			text:    "abcdefghij",
			initial: 2,
			minimum: 1,
			want: []tilescan.Match{
				{PatternIndex: 0, TextIndex: 0, Length: 10},
			},
		},
		{
			name:    "repeated pattern over short text",
			pattern: "ababab",
			text:    "ab",
			initial: 3,
			minimum: 2,
			want: []tilescan.Match{
				{PatternIndex: 0, TextIndex: 0, Length: 2},
			},
		},
		{
			name:    "nothing in common",
			pattern: "aaaa",
			text:    "bbbb",
			initial: 3,
			minimum: 2,
			want:    nil,
		},
		{
			name:    "empty pattern",
			pattern: "",
			text:    "yellow",
			initial: 3,
			minimum: 2,
			want:    nil,
		},
		{
			name:    "empty text",
			pattern: "lower",
			text:    "",
			initial: 3,
			minimum: 2,
			want:    nil,
		},
		{
			name:    "minimum longer than both sequences",
			pattern: "abc",
			text:    "abc",
			initial: 9,
			minimum: 9,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run([]byte(tt.pattern), []byte(tt.text), tt.initial, tt.minimum)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunInvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		minimum int
		wantErr error
	}{
		{"zero initial", 0, 2, ErrNonPositiveLength},
		{"zero minimum", 3, 0, ErrNonPositiveLength},
		{"negative initial", -1, 2, ErrNonPositiveLength},
		{"negative minimum", 3, -4, ErrNonPositiveLength},
		{"minimum above initial", 3, 5, ErrMinimumAboveInitial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run([]byte("lower"), []byte("yellow"), tt.initial, tt.minimum)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

// checkInvariants verifies every documented property of a result: in-bounds
// spans, minimum length, exact byte equality, pairwise non-overlap on both
// sides, and maximality (no tile can grow by one position in either direction
// without hitting a mismatch, another tile, or a sequence end).
func checkInvariants(t *testing.T, pattern, text []byte, minimum int, matches []tilescan.Match) {
	t.Helper()

	patternMark := make([]bool, len(pattern))
	textMark := make([]bool, len(text))
	for _, m := range matches {
		require.GreaterOrEqual(t, m.PatternIndex, 0)
		require.GreaterOrEqual(t, m.TextIndex, 0)
		require.GreaterOrEqual(t, m.Length, minimum)
		require.LessOrEqual(t, m.PatternEnd(), len(pattern))
		require.LessOrEqual(t, m.TextEnd(), len(text))

		assert.Equal(t,
			string(pattern[m.PatternIndex:m.PatternEnd()]),
			string(text[m.TextIndex:m.TextEnd()]),
			"tile %+v content differs", m)

		for i := 0; i < m.Length; i++ {
			assert.False(t, patternMark[m.PatternIndex+i], "pattern overlap at %d in %+v", m.PatternIndex+i, m)
			assert.False(t, textMark[m.TextIndex+i], "text overlap at %d in %+v", m.TextIndex+i, m)
			patternMark[m.PatternIndex+i] = true
			textMark[m.TextIndex+i] = true
		}
	}

	for _, m := range matches {
		if p, x := m.PatternEnd(), m.TextEnd(); p < len(pattern) && x < len(text) {
			extendable := pattern[p] == text[x] && !patternMark[p] && !textMark[x]
			assert.False(t, extendable, "tile %+v extendable forward", m)
		}
		if p, x := m.PatternIndex-1, m.TextIndex-1; p >= 0 && x >= 0 {
			extendable := pattern[p] == text[x] && !patternMark[p] && !textMark[x]
			assert.False(t, extendable, "tile %+v extendable backward", m)
		}
	}
}

func TestRunProperties(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		initial int
		minimum int
	}{
		{
			name:    "reordered sentence",
			pattern: "the quick brown fox jumps over the lazy dog",
			text:    "the lazy dog jumps over the quick brown fox",
			initial: 5,
			minimum: 3,
		},
		{
			name:    "interleaved repeats",
			pattern: "abcabcabcabc",
			text:    "abcabc xyz abcabc",
			initial: 4,
			minimum: 2,
		},
		{
			name:    "shared code fragment",
			pattern: "func add(a, b int) int { return a + b }",
			text:    "func sum(a, b int) int { return a + b }\nfunc add(x int) int { return x }",
			initial: 8,
			minimum: 4,
		},
		{
			name:    "single byte alphabet",
			pattern: "aaaaaaaa",
			text:    "aaaa aaaa",
			initial: 3,
			minimum: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, text := []byte(tt.pattern), []byte(tt.text)
			got, err := Run(pattern, text, tt.initial, tt.minimum)
			require.NoError(t, err)
			checkInvariants(t, pattern, text, tt.minimum, got)

			// Same inputs, same result, byte for byte.
			again, err := Run(pattern, text, tt.initial, tt.minimum)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestNextWindowStart(t *testing.T) {
	mark := []bool{false, false, true, false, false, false, true, false}
	tests := []struct {
		name string
		i, s int
		want int
	}{
		{"clean window stays", 3, 3, 3},
		{"marked window skips past mark", 0, 3, 3},
		{"double skip runs out of windows", 0, 4, 7},
		{"no window fits returns i unchanged", 6, 3, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextWindowStart(mark, tt.i, tt.s))
		})
	}
}
