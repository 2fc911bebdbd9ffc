// Package report writes scan results in machine- or human-readable form.
package report

import (
	"io"

	"github.com/tilescan/tilescan/scan"
)

// Reporter writes one scan's results to w.
type Reporter interface {
	Write(w io.Writer, results []scan.Result) error
}
