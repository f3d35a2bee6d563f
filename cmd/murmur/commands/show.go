package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/pkg/cli"
	"github.com/murmurapp/murmur/pkg/store"
)

var showFlags struct {
	output string
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recording's transcript",
	Args:  cobra.ExactArgs(1),
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

		format := cli.OutputFormat(showFlags.output)
		if format == "" || format == cli.FormatText {
			return cli.Output(transcriptText(rec), cli.OutputOptions{Format: cli.FormatText})
		}
		return cli.Output(rec, cli.OutputOptions{Format: format})
	},
}

// transcriptText renders a recording as a readable transcript. Speaker
// labels appear only after a diarized session.
func transcriptText(rec *store.Recording) string {
	var b strings.Builder

	name := rec.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "%s\n", name)
	fmt.Fprintf(&b, "%s · %s · %d segment(s)",
		rec.CreatedAt.Local().Format("2006-01-02 15:04"),
		cli.FormatDuration(rec.Duration),
		len(rec.Segments))
	if rec.SpeakerCount > 0 {
		fmt.Fprintf(&b, " · %d speaker(s)", rec.SpeakerCount)
	}
	b.WriteString("\n\n")

	for _, seg := range rec.Segments {
		if seg.Speaker >= 0 {
			fmt.Fprintf(&b, "S%d: %s\n", seg.Speaker+1, seg.Text)
		} else {
			fmt.Fprintf(&b, "%s\n", seg.Text)
		}
	}
	return b.String()
}

func init() {
	showCmd.Flags().StringVarP(&showFlags.output, "output", "o", "", "output format (text, yaml, json)")
	rootCmd.AddCommand(showCmd)
}
