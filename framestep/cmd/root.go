// Package cmd provides the command-line interface for framestep.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "framestep",
	Short: "Framestep CLI tool can run and inspect fixed-timestep " +
		"simulations built with the framestep library.",
	Long: `Framestep CLI tool can run and inspect fixed-timestep ` +
		`simulations built with the framestep library. Currently, it ` +
		`supports running a demo simulation with multiple channels.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// An optional .env file can provide defaults, such as
	// FRAMESTEP_MONITOR_PORT.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
