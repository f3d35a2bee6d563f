package commands

import (
	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/pkg/cli"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a recording",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepo()
		if err != nil {
			return err
		}
		defer closeRepo()

		rec, err := resolveRecording(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		if err := repo.Rename(cmd.Context(), rec.ID, args[1]); err != nil {
			return err
		}
		cli.PrintSuccess("renamed %s to %q", rec.ID.String()[:8], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
