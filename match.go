package tilescan

// Match is one tile: a common substring shared by the pattern and the text.
// It is a pure value; two matches are the same match iff their fields are
// equal.
type Match struct {
	// PatternIndex is the tile's start offset in the pattern.
	PatternIndex int

	// TextIndex is the tile's start offset in the text.
	TextIndex int

	// Length is the number of positions the tile covers on each side.
	// Always positive for a returned match.
	Length int
}

// PatternEnd returns the offset one past the tile's last pattern position.
func (m Match) PatternEnd() int {
	return m.PatternIndex + m.Length
}

// TextEnd returns the offset one past the tile's last text position.
func (m Match) TextEnd() int {
	return m.TextIndex + m.Length
}

// Compare orders matches by (PatternIndex, TextIndex, Length). Result lists
// are reported in acceptance order, not this order; Compare exists so callers
// and tests have one canonical ordering to sort by.
func (m Match) Compare(o Match) int {
	switch {
	case m.PatternIndex != o.PatternIndex:
		return m.PatternIndex - o.PatternIndex
	case m.TextIndex != o.TextIndex:
		return m.TextIndex - o.TextIndex
	default:
		return m.Length - o.Length
	}
}
