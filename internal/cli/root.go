package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pidash/internal/logger"
	"github.com/rileyhilliard/pidash/internal/ui"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "pidash",
	Short: "Live sensor dashboard for a Raspberry-Pi fleet",
	Long: `pidash browses a fleet of Raspberry-Pi gateways, their microcontroller
boards and sensors, and opens a live widget per sensor: a value card with a
gauge, or a rolling 60 second chart.

Telemetry comes from a built-in simulator, so the dashboard works without
any hardware attached.

Examples:
  pidash dash
  pidash watch --sensors t1,h1
  pidash snapshot --sensor t1 --out t1.png`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
		logger.SetDefault(logger.NewEnvLogger("[pidash]"))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .pidash.yaml, searched upwards)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(rootCmd, err))
		os.Exit(1)
	}
}

// formatError turns cobra's terse usage errors into a hint. Structured
// errors already carry their own suggestion.
func formatError(root *cobra.Command, err error) string {
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if !isUnknownCommandError(err) {
		return msg
	}

	name := extractUnknownCommand(err)
	if name == "" {
		return msg + "\n  Run 'pidash --help' to see available commands\n"
	}
	if suggestions := root.SuggestionsFor(name); len(suggestions) > 0 {
		return msg + fmt.Sprintf("\n  Did you mean '%s'?\n", suggestions[0])
	}
	return msg + "\n  Run 'pidash --help' to see available commands\n"
}

// isUnknownCommandError reports whether err is cobra's unknown command or
// unknown flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of
// `unknown command "foo" for "pidash"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
