package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lstw2025/sv-documentation-platform/internal/definition"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a survey definition for consistency",
	Long:  `Parses a YAML survey definition and reports duplicate question ids, dangling condition references, and malformed questions.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("definition")
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			fmt.Println("Error: provide a definition file to validate")
			os.Exit(1)
		}

		def, err := definition.LoadFile(path)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Definition %q is valid: %d sections, %d questions\n",
			def.ID, len(def.Sections), def.TotalQuestions())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
