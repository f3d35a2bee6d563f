package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/pkg/cli"
)

var listFlags struct {
	output string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored recordings, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := openRepo()
		if err != nil {
			return err
		}
		defer closeRepo()

		recs, err := repo.List(cmd.Context())
		if err != nil {
			return err
		}

		if listFlags.output != "" {
			return cli.Output(recs, cli.OutputOptions{Format: cli.OutputFormat(listFlags.output)})
		}

		if len(recs) == 0 {
			cli.PrintInfo("no recordings")
			return nil
		}

		fmt.Printf("%-8s  %-16s  %-8s  %4s  %4s  %s\n",
			"ID", "CREATED", "LENGTH", "SEGS", "SPKR", "NAME")
		for _, rec := range recs {
			name := rec.Name
			if name == "" {
				name = "(unnamed)"
			}
			if !rec.Completed {
				name += " *"
			}
			fmt.Printf("%-8s  %-16s  %-8s  %4d  %4d  %s\n",
				rec.ID.String()[:8],
				rec.CreatedAt.Local().Format("2006-01-02 15:04"),
				cli.FormatDuration(rec.Duration),
				len(rec.Segments),
				rec.SpeakerCount,
				name)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listFlags.output, "output", "o", "", "output format (yaml, json)")
	rootCmd.AddCommand(listCmd)
}
