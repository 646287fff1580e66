package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusflow/internal/quotes"
)

func newQuoteCommand(env *environment) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a motivational quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quote := quotes.RandomFallback()
			if !offline {
				provider := quotes.NewProvider(quotesConfig(env.config.Quotes), env.logger.Logger)
				quote = provider.Fetch(cmd.Context())
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "“%s”\n  - %s\n", quote.Text, quote.Author)
			return err
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "skip the quote API and use the built-in list")
	return cmd
}
