package report

import (
	"encoding/json"
	"io"

	"github.com/tilescan/tilescan/scan"
)

type JSONReporter struct{}

var _ Reporter = (*JSONReporter)(nil)

func (*JSONReporter) Write(w io.Writer, results []scan.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")
	return encoder.Encode(results)
}
