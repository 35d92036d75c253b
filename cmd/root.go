package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"stackctl/pkg/logging"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackctl",
	Short: "Provision a local development stack from containerized services",
	Long: `stackctl bootstraps a local development environment by starting
containerized services in dependency-aware categories (database, dbms,
backend, proxy, ...), gating on the readiness of critical tiers and
reporting the outcome of every service.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid categories, failed installations)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		// Stderr, so logs never interleave with reports on stdout.
		logging.Init(level, os.Stderr)
	},
}

// exitError carries a specific process exit code through cobra's error
// plumbing. Degraded and failed installations exit 2 and 3; plain errors
// exit 1.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "stackctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newDownCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLogsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
