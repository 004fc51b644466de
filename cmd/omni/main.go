package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:           "omni",
	Short:         "TITAN-OMNI creative studio",
	Long:          "omni is the TITAN-OMNI creative studio: prompt-driven generation engines,\na local content service for projects and agents, and a scene-timeline editor.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(enginesCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(studioCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
