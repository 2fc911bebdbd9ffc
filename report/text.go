package report

import (
	"fmt"
	"io"

	"github.com/tilescan/tilescan/scan"
)

// TextReporter writes one summary line per document and one line per tile.
type TextReporter struct{}

var _ Reporter = (*TextReporter)(nil)

func (*TextReporter) Write(w io.Writer, results []scan.Result) error {
	for _, res := range results {
		_, err := fmt.Fprintf(w, "%s: %d tiles, %.1f%% coverage\n",
			res.Path, len(res.Matches), res.Coverage*100)
		if err != nil {
			return err
		}
		for _, m := range res.Matches {
			_, err := fmt.Fprintf(w, "  pattern[%d:%d] text[%d:%d]\n",
				m.PatternIndex, m.PatternEnd(), m.TextIndex, m.TextEnd())
			if err != nil {
				return err
			}
		}
	}
	return nil
}
