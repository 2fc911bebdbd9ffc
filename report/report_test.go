package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilescan/tilescan"
	"github.com/tilescan/tilescan/scan"
)

var testResults = []scan.Result{
	{
		Path: "a.txt",
		Matches: []tilescan.Match{
			{PatternIndex: 0, TextIndex: 3, Length: 3},
			{PatternIndex: 5, TextIndex: 7, Length: 3},
		},
		Coverage: 0.75,
	},
	{Path: "b.txt"},
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{}).Write(&buf, testResults))

	var got []scan.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testResults, got)
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{}).Write(&buf, testResults))

	want := strings.Join([]string{
		"a.txt: 2 tiles, 75.0% coverage",
		"  pattern[0:3] text[3:6]",
		"  pattern[5:8] text[7:10]",
		"b.txt: 0 tiles, 0.0% coverage",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}
