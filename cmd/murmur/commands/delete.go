package commands

import (
	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/pkg/cli"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete recordings",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepo()
		if err != nil {
			return err
		}
		defer closeRepo()

		for _, ref := range args {
			rec, err := resolveRecording(cmd.Context(), repo, ref)
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), rec.ID); err != nil {
				return err
			}
			cli.PrintSuccess("deleted %s", rec.ID.String()[:8])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
