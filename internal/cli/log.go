package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/mood/internal/moodlog"
)

func newLogCommand(ctx context.Context, deps Deps) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "log <mood> [note...]",
		Short: "Record a mood (1-5 or very-sad|sad|neutral|happy|very-happy) with an optional note.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mood, err := moodlog.ParseMood(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q (expected 1-5 or very-sad|sad|neutral|happy|very-happy)", err, args[0])
			}

			when, err := resolveDate(dateFlag, deps.now())
			if err != nil {
				return err
			}

			note := strings.TrimSpace(strings.Join(args[1:], " "))
			entry := moodlog.NewEntry(when, mood, note)
			if err := deps.store(deps.Logger).Append(ctx, entry); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatLogged(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Entry date in YYYY-MM-DD (default: today)")

	return cmd
}
