package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fragmede/threadtree/internal/api"
	"github.com/fragmede/threadtree/internal/source"
)

func newUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <name>",
		Short: "Render a user's recent HN threads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			name := args[0]

			rows, err := a.client.GetThreadsPage(cmd.Context(), name)
			if errors.Is(err, api.ErrNoThreads) {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s has no threads\n", name)
				return nil
			}
			if err != nil {
				return fmt.Errorf("loading threads for %s: %w", name, err)
			}
			return a.show(cmd, page{
				name:     name + "'s threads",
				comments: source.FromIndented(rows, time.Now()),
			})
		},
	}
}
