package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mvp-joe/project-scrub/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scrub",
	Short: "Scrub - strip annotated declarations from Java sources",
	Long: `Scrub removes classes, methods and fields marked with chosen annotations
from Java source files, together with their doc comments and the blank lines
above them, leaving everything else byte-for-byte intact.

Configuration is read from .scrub/config.yml in the working directory, then
SCRUB_* environment variables, then command-line flags.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .scrub/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initLogging routes the log package to stderr, and silences it unless
// --verbose is set.
func initLogging() {
	log.SetFlags(0)
	log.SetPrefix("scrub: ")
	if verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
}

// loadConfig loads the --config file when given, otherwise the project
// config under rootDir.
func loadConfig(rootDir string) (*config.Config, error) {
	if cfgFile != "" {
		return config.NewFileLoader(cfgFile).Load()
	}
	return config.LoadConfigFromDir(rootDir)
}
