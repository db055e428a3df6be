// Package main provides the formflow CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	envFiles     []string
	outputFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", exit.err)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "Form validation and submission service",
	Long: `formflow validates the login, sign-up and hook forms and drives their
submission lifecycle: idle, submitting, succeeded or failed, with a toast
announcing the outcome.

Settings come from the environment and optional .env files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Load variables from .env files when present")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "Output format: json or yaml")
	rootCmd.Version = Version
}
