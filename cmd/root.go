package cmd

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tilescan/tilescan/logging"
	"github.com/tilescan/tilescan/version"
)

var rootCmd = &cobra.Command{
	Use:     "tilescan",
	Short:   "Tilescan finds the common substring tiles shared by documents",
	Version: version.Version,
}

func init() {
	cobra.OnInitialize(initLog)
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().Int("initial-search-length", 20, "search length the first scan pass starts from")
	rootCmd.PersistentFlags().Int("min-match-length", 6, "shortest tile worth reporting")

	if err := viper.BindPFlag("initial-search-length", rootCmd.PersistentFlags().Lookup("initial-search-length")); err != nil {
		logging.Fatal().Msgf("err binding initial-search-length %s", err.Error())
	}
	if err := viper.BindPFlag("min-match-length", rootCmd.PersistentFlags().Lookup("min-match-length")); err != nil {
		logging.Fatal().Msgf("err binding min-match-length %s", err.Error())
	}
}

var logLevel = zerolog.InfoLevel

func initLog() {
	ll, err := rootCmd.Flags().GetString("log-level")
	if err != nil {
		logging.Fatal().Msg(err.Error())
	}

	switch strings.ToLower(ll) {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "err", "error":
		logLevel = zerolog.ErrorLevel
	case "fatal":
		logLevel = zerolog.FatalLevel
	default:
		logging.Warn().Msgf("unknown log level: %s", ll)
	}
	logging.Logger = logging.Logger.Level(logLevel)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Fatal().Msg(err.Error())
	}
}

func mustGetBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetIntFlag(cmd *cobra.Command, name string) int {
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		logging.Fatal().Err(err).Msgf("could not get flag: %s", name)
	}
	return value
}
