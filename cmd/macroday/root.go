package macroday

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "macroday",
	Short: "macroday tracks meals, macros, and body stats from your terminal",
	Long:  "macroday is a local-first nutrition coach: set a profile, get calorie and macro targets, log meals, activity, and weight, and review daily and weekly statistics.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
