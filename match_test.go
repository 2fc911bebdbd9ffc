package tilescan

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCompare(t *testing.T) {
	matches := []Match{
		{PatternIndex: 5, TextIndex: 7, Length: 3},
		{PatternIndex: 0, TextIndex: 3, Length: 4},
		{PatternIndex: 0, TextIndex: 3, Length: 3},
		{PatternIndex: 0, TextIndex: 1, Length: 9},
	}
	slices.SortFunc(matches, Match.Compare)

	assert.Equal(t, []Match{
		{PatternIndex: 0, TextIndex: 1, Length: 9},
		{PatternIndex: 0, TextIndex: 3, Length: 3},
		{PatternIndex: 0, TextIndex: 3, Length: 4},
		{PatternIndex: 5, TextIndex: 7, Length: 3},
	}, matches)
}

func TestMatchSpans(t *testing.T) {
	m := Match{PatternIndex: 2, TextIndex: 5, Length: 3}
	assert.Equal(t, 5, m.PatternEnd())
	assert.Equal(t, 8, m.TextEnd())
}
