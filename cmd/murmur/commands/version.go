package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/cmd/murmur/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(build.String())
		if IsVerbose() {
			fmt.Printf("  go:       %s\n", runtime.Version())
			if s, err := GetSettings(); err == nil {
				fmt.Printf("  settings: %s\n", s.Path())
			} else {
				fmt.Printf("  settings: (unavailable: %v)\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
