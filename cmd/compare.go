package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tilescan/tilescan/logging"
	"github.com/tilescan/tilescan/report"
	"github.com/tilescan/tilescan/scan"
	"github.com/tilescan/tilescan/sources"
)

const megabyte = 1000 * 1000

func init() {
	compareCmd.Flags().StringP("report-format", "f", "json", "output format (json, text)")
	compareCmd.Flags().StringP("report-path", "r", "", "report file (default stdout)")
	compareCmd.Flags().Int("max-target-megabytes", 0, "files larger than this will be skipped")
	compareCmd.Flags().Int("concurrency", 0, "how many documents to tile at once")
	compareCmd.Flags().BoolP("verbose", "v", false, "print every tile's content")
	compareCmd.Flags().Bool("no-color", false, "turn off color for verbose output")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare <pattern> <target>",
	Short: "Tile a pattern file against a target file or directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	start := time.Now()

	pattern, err := sources.Load(args[0])
	if err != nil {
		return err
	}

	src := &sources.Files{
		Path:        args[1],
		MaxFileSize: int64(mustGetIntFlag(cmd, "max-target-megabytes")) * megabyte,
	}
	docs, err := src.Documents()
	if err != nil {
		return err
	}

	pipeline, err := scan.NewPipeline(pattern,
		viper.GetInt("initial-search-length"),
		viper.GetInt("min-match-length"))
	if err != nil {
		return err
	}
	pipeline.Concurrency = mustGetIntFlag(cmd, "concurrency")

	results, err := pipeline.Run(cmd.Context(), docs)
	if err != nil {
		return err
	}

	if mustGetBoolFlag(cmd, "verbose") {
		noColor := mustGetBoolFlag(cmd, "no-color") || !isatty.IsTerminal(os.Stdout.Fd())
		for _, res := range results {
			printResult(res, pattern.Data, noColor)
		}
	}

	tiles := 0
	for _, res := range results {
		tiles += len(res.Matches)
	}
	logging.Info().
		Int("documents", len(docs)).
		Int("tiles", tiles).
		Str("duration", time.Since(start).Round(time.Millisecond).String()).
		Msg("compare finished")

	return writeReport(cmd, results)
}

func writeReport(cmd *cobra.Command, results []scan.Result) error {
	var reporter report.Reporter
	switch format := mustGetStringFlag(cmd, "report-format"); format {
	case "json":
		reporter = &report.JSONReporter{}
	case "text":
		reporter = &report.TextReporter{}
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}

	path := mustGetStringFlag(cmd, "report-path")
	if path == "" || path == "-" {
		return reporter.Write(os.Stdout, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return reporter.Write(f, results)
}

var tileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#bf9478"))

// printResult dumps each tile's content. Tile content is identical on both
// sides, so the pattern slice is enough.
func printResult(res scan.Result, pattern []byte, noColor bool) {
	fmt.Printf("%s (%.1f%% coverage)\n", res.Path, res.Coverage*100)
	for _, m := range res.Matches {
		content := string(pattern[m.PatternIndex:m.PatternEnd()])
		if !noColor {
			content = tileStyle.Render(content)
		}
		fmt.Printf("  %d:%d -> %d:%d  %q\n",
			m.PatternIndex, m.PatternEnd(), m.TextIndex, m.TextEnd(), content)
	}
}
