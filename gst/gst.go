// Package gst implements Running Karp-Rabin Greedy-String-Tiling (RKR-GST):
// it tiles two byte sequences with their maximal non-overlapping common
// substrings above a minimum length.
//
// The algorithm alternates two phases under a shrinking search length s.
// A scan phase indexes every unmarked text window of width s by its rolling
// Adler-32 checksum, walks the pattern with the same checksum, and verifies
// and extends every collision into a true common substring. A tiling phase
// then accepts the candidates longest-first, marking the consumed positions
// so no later candidate can reuse them. s halves between rounds, floored at
// the minimum match length.
package gst

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chmduquesne/rollinghash/adler32"

	"github.com/tilescan/tilescan"
	"github.com/tilescan/tilescan/logging"
)

var (
	// ErrNonPositiveLength is returned when either search length parameter
	// is zero or negative.
	ErrNonPositiveLength = errors.New("gst: search lengths must be positive")

	// ErrMinimumAboveInitial is returned when the minimum match length
	// exceeds the initial search length. The driver shrinks the search
	// length from the initial value down to the minimum; starting below the
	// minimum would emit tiles shorter than the caller asked for.
	ErrMinimumAboveInitial = errors.New("gst: minimum match length exceeds initial search length")
)

// engine holds the mutable state of one Run invocation. The pattern and text
// are borrowed read-only; the marks, candidate buffer, and result list are
// owned by the run and dropped when it returns. Not safe for concurrent use.
type engine struct {
	pattern []byte
	text    []byte

	// One flag per position. A marked position has been consumed by an
	// accepted tile and never becomes eligible again.
	patternMark []bool
	textMark    []bool

	// Candidates from the current scan pass. Cleared every pass.
	matches []tilescan.Match

	// Accepted tiles, in acceptance order.
	result []tilescan.Match
}

// nextWindowStart advances i until the window [i, i+s) contains no marked
// position, or until no full window fits in mark. A returned in-bounds
// window never straddles a marked position.
func nextWindowStart(mark []bool, i, s int) int {
	for i+s <= len(mark) {
		clean := true
		for j := i; j < i+s; j++ {
			if mark[j] {
				i = j + 1
				clean = false
				break
			}
		}
		if clean {
			break
		}
	}
	return i
}

// buildIndex slides a window of width s across the unmarked runs of the text
// and maps every window checksum to the start offsets producing it, in scan
// order. Checksum collisions are expected; the scanner verifies every probe
// by direct comparison. The index is rebuilt from scratch each pass because
// tiling changes the mark state between passes.
func (e *engine) buildIndex(s int) map[uint32][]int {
	index := make(map[uint32][]int)
	i := 0
	for i+s <= len(e.text) {
		i = nextWindowStart(e.textMark, i, s)
		if i+s > len(e.text) {
			break
		}

		// Checksum the first window of the run, then roll one byte at a
		// time until the trailing edge hits a marked position.
		h := adler32.New()
		_, _ = h.Write(e.text[i : i+s])
		for {
			if e.textMark[i+s-1] {
				break
			}
			sum := h.Sum32()
			index[sum] = append(index[sum], i)
			i++
			if i+s > len(e.text) {
				break
			}
			h.Roll(e.text[i+s-1])
		}
	}
	return index
}

// scanPattern runs one scan pass at search length s. It walks the pattern's
// unmarked windows with the same rolling checksum used for the index, and for
// every colliding text offset verifies and extends the match byte by byte.
// Extensions of at least s become candidates in e.matches.
//
// The return value is the longest extension observed. Anything greater than
// 2*s means the pass aborted early: a much longer match exists than the
// current threshold assumes, the candidate buffer is not trustworthy, and the
// caller must rescan at the larger length.
func (e *engine) scanPattern(s int) int {
	index := e.buildIndex(s)

	e.matches = e.matches[:0]
	maxMatch := 0
	i := 0
	for i+s <= len(e.pattern) {
		i = nextWindowStart(e.patternMark, i, s)
		if i+s > len(e.pattern) {
			break
		}

		h := adler32.New()
		_, _ = h.Write(e.pattern[i : i+s])
		for {
			if e.patternMark[i+s-1] {
				break
			}
			for _, textIndex := range index[h.Sum32()] {
				k := e.extend(i, textIndex)
				if k > 2*s {
					return k
				}
				if k >= s {
					e.matches = append(e.matches, tilescan.Match{
						PatternIndex: i,
						TextIndex:    textIndex,
						Length:       k,
					})
					if k > maxMatch {
						maxMatch = k
					}
				}
			}
			i++
			if i+s > len(e.pattern) {
				break
			}
			h.Roll(e.pattern[i+s-1])
		}
	}
	return maxMatch
}

// extend walks forward from (patternIndex, textIndex) while the bytes are
// equal and neither side's position is already tiled. It stops exactly at the
// first mismatch, mark, or sequence end.
func (e *engine) extend(patternIndex, textIndex int) int {
	k := 0
	for patternIndex+k < len(e.pattern) &&
		textIndex+k < len(e.text) &&
		e.pattern[patternIndex+k] == e.text[textIndex+k] &&
		!e.patternMark[patternIndex+k] &&
		!e.textMark[textIndex+k] {
		k++
	}
	return k
}

// markMatches tiles the current candidate set greedily: longest first, with
// ties kept in discovery order (the sort is stable). A candidate whose span
// touches any already-marked position on either side is rejected whole; an
// accepted candidate marks its full span on both sides. The candidate buffer
// is consumed either way.
func (e *engine) markMatches() {
	sort.SliceStable(e.matches, func(a, b int) bool {
		return e.matches[a].Length > e.matches[b].Length
	})
	for _, m := range e.matches {
		if e.spanMarked(m) {
			continue
		}
		e.result = append(e.result, m)
		for i := 0; i < m.Length; i++ {
			e.patternMark[m.PatternIndex+i] = true
			e.textMark[m.TextIndex+i] = true
		}
	}
	e.matches = e.matches[:0]
}

func (e *engine) spanMarked(m tilescan.Match) bool {
	for i := 0; i < m.Length; i++ {
		if e.patternMark[m.PatternIndex+i] || e.textMark[m.TextIndex+i] {
			return true
		}
	}
	return false
}

// Run tiles pattern against text and returns the accepted matches in
// acceptance order: within a round longer tiles precede shorter ones, and
// earlier rounds precede later ones. Every returned match has Length >=
// minimumMatchLength, its pattern spans are mutually disjoint, and so are its
// text spans.
//
// Run is deterministic: identical inputs and parameters produce an identical
// match sequence. Empty inputs yield an empty result. Both lengths must be
// positive and minimumMatchLength must not exceed initialSearchLength.
func Run(pattern, text []byte, initialSearchLength, minimumMatchLength int) ([]tilescan.Match, error) {
	if initialSearchLength <= 0 || minimumMatchLength <= 0 {
		return nil, fmt.Errorf("%w: initial %d, minimum %d",
			ErrNonPositiveLength, initialSearchLength, minimumMatchLength)
	}
	if minimumMatchLength > initialSearchLength {
		return nil, fmt.Errorf("%w: minimum %d, initial %d",
			ErrMinimumAboveInitial, minimumMatchLength, initialSearchLength)
	}

	e := &engine{
		pattern:     pattern,
		text:        text,
		patternMark: make([]bool, len(pattern)),
		textMark:    make([]bool, len(text)),
	}

	s := initialSearchLength
	for {
		lmax := e.scanPattern(s)
		logging.Trace().
			Int("search_length", s).
			Int("lmax", lmax).
			Int("candidates", len(e.matches)).
			Msg("scan pass")

		if lmax > 2*s {
			// A match more than twice the threshold exists; rescanning at
			// its length is cheaper than tiling the many short candidates
			// the aborted pass would have produced.
			s = lmax
			continue
		}

		e.markMatches()
		switch {
		case s > 2*minimumMatchLength:
			s /= 2
		case s > minimumMatchLength:
			s = minimumMatchLength
		default:
			return e.result, nil
		}
	}
}
