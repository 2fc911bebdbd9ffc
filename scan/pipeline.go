// Package scan compares one pattern document against any number of text
// documents, running the gst tiling engine behind an Aho-Corasick prefilter.
package scan

import (
	"context"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
	"github.com/fatih/semgroup"

	"github.com/tilescan/tilescan"
	"github.com/tilescan/tilescan/gst"
	"github.com/tilescan/tilescan/logging"
)

const defaultConcurrency = 16

// Result holds the tiles shared by the pattern and one text document.
type Result struct {
	// Path identifies the text document.
	Path string

	// Matches are the accepted tiles, in acceptance order.
	Matches []tilescan.Match

	// Coverage is the fraction of the shorter of the two sequences covered
	// by tiles, in [0, 1].
	Coverage float64
}

// Pipeline tiles a fixed pattern against text documents. Safe for concurrent
// use once constructed; the per-run state lives inside gst.Run.
type Pipeline struct {
	Pattern             tilescan.Document
	InitialSearchLength int
	MinMatchLength      int

	// Concurrency bounds how many documents are tiled at once by Run.
	// Zero means defaultConcurrency.
	Concurrency int

	// prefilter matches every distinct MinMatchLength-byte substring of the
	// pattern. A text containing none of them cannot share a tile of at
	// least that length, so tiling is skipped for it. Nil when the pattern
	// is shorter than MinMatchLength, in which case no tile is possible at
	// all.
	prefilter *ahocorasick.Trie
}

// NewPipeline validates the parameters and builds the pattern prefilter.
func NewPipeline(pattern tilescan.Document, initialSearchLength, minMatchLength int) (*Pipeline, error) {
	// Reject bad parameters here rather than on every document.
	if initialSearchLength <= 0 || minMatchLength <= 0 {
		return nil, gst.ErrNonPositiveLength
	}
	if minMatchLength > initialSearchLength {
		return nil, gst.ErrMinimumAboveInitial
	}

	p := &Pipeline{
		Pattern:             pattern,
		InitialSearchLength: initialSearchLength,
		MinMatchLength:      minMatchLength,
	}
	if grams := patternGrams(pattern.Data, minMatchLength); len(grams) > 0 {
		p.prefilter = ahocorasick.NewTrieBuilder().AddStrings(grams).Build()
	}
	return p, nil
}

// patternGrams returns the distinct substrings of data of exactly n bytes,
// in first-occurrence order.
func patternGrams(data []byte, n int) []string {
	if n <= 0 || len(data) < n {
		return nil
	}
	seen := make(map[string]struct{}, len(data)-n+1)
	grams := make([]string, 0, len(data)-n+1)
	for i := 0; i+n <= len(data); i++ {
		g := string(data[i : i+n])
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		grams = append(grams, g)
	}
	return grams
}

// ProcessDocument tiles the pattern against a single document.
func (p *Pipeline) ProcessDocument(doc tilescan.Document) (Result, error) {
	res := Result{Path: doc.Path}

	if p.prefilter == nil || p.prefilter.MatchFirst(doc.Data) == nil {
		logging.Debug().Str("path", doc.Path).Msg("skipping document: no shared gram")
		return res, nil
	}

	matches, err := gst.Run(p.Pattern.Data, doc.Data, p.InitialSearchLength, p.MinMatchLength)
	if err != nil {
		return res, err
	}
	res.Matches = matches
	res.Coverage = coverage(matches, len(p.Pattern.Data), len(doc.Data))

	logging.Debug().
		Str("path", doc.Path).
		Int("tiles", len(matches)).
		Float64("coverage", res.Coverage).
		Msg("tiled document")
	return res, nil
}

// Run tiles the pattern against every document concurrently and returns one
// Result per document, in input order.
func (p *Pipeline) Run(ctx context.Context, docs []tilescan.Document) ([]Result, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]Result, len(docs))
	sg := semgroup.NewGroup(ctx, int64(concurrency))
	for i, doc := range docs {
		// Shadow the range variables: under the pre-Go 1.22 loop semantics
		// enforced by the go directive, the closure would otherwise share
		// one variable across iterations.
		i, doc := i, doc
		sg.Go(func() error {
			res, err := p.ProcessDocument(doc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := sg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// coverage is the summed tile length over the shorter sequence length.
// Tiles never overlap, so the sum never exceeds either length.
func coverage(matches []tilescan.Match, patternLen, textLen int) float64 {
	n := min(patternLen, textLen)
	if n == 0 {
		return 0
	}
	total := 0
	for _, m := range matches {
		total += m.Length
	}
	return float64(total) / float64(n)
}
