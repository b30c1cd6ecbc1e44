package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/mood/internal/newsletter"
	"github.com/faizmokh/mood/internal/quote"
	"github.com/faizmokh/mood/internal/version"
)

func newQuoteCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print an encouraging quote.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := deps.Rand
			if r == nil {
				r = rand.New(rand.NewSource(time.Now().UnixNano()))
			}
			fmt.Fprintln(cmd.OutOrStdout(), quote.Random(r))
			return nil
		},
	}
}

func newSubscribeCommand(ctx context.Context, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Sign up for the mental health newsletter.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			email := args[0]
			if _, err := newsletter.ValidateEmail(email); err != nil {
				fmt.Fprintln(out, newsletter.MsgInvalidEmail)
				return err
			}

			fmt.Fprintln(out, newsletter.MsgSubscribing)
			err := deps.Subscriber.Subscribe(ctx, email)
			fmt.Fprintln(out, newsletter.StatusMessage(email, err))
			if err != nil {
				deps.Logger.Error("subscribe failed", "err", err)
				return err
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	var (
		short  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print mood build information.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Output(short, output))
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	return cmd
}
