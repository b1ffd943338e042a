package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Intake is an anonymous survey engine",
	Long:  `Intake runs trauma-aware anonymous questionnaires: paginated sections, conditional branching, crisis detection, and local auto-save.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("definition", "", "Path to a YAML survey definition (default: built-in intake survey)")
}
