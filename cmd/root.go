package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the freeslots application
var rootCmd = &cobra.Command{
	Use:   "freeslots",
	Short: "List open meeting windows from a Google Calendar",
	Long: `freeslots computes attendee-facing availability from a Google Calendar:
busy events are widened by a safety buffer, merged, and subtracted from a
business-hours policy window, and the remaining free windows are
translated into the attendee's timezone as text or JSON.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "freeslots version %s\n" .Version}}`)

	// Flags-only invocations run the find command by default, so
	// `freeslots --attendee-tz Europe/London` works without naming it.
	if len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "-") && !isRootFlag(os.Args[1]) {
		os.Args = append([]string{os.Args[0], "find"}, os.Args[1:]...)
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func isRootFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "-v", "--version":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
