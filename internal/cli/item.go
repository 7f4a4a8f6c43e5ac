package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fragmede/threadtree/internal/config"
	"github.com/fragmede/threadtree/internal/source"
)

func newItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Render an HN story or comment with all of its replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			th, err := a.loadItem(cmd, id)
			if err != nil {
				return err
			}
			return a.show(cmd, page{
				name:     fmt.Sprintf("item %d", id),
				title:    th.Title,
				url:      th.URL,
				comments: th.Comments,
			})
		},
	}
}

func (a *app) loadItem(cmd *cobra.Command, id int) (source.Thread, error) {
	ctx := cmd.Context()
	if a.cfg.Source == config.SourceAlgolia {
		tree, err := a.client.GetItemTree(ctx, id)
		if err != nil {
			return source.Thread{}, fmt.Errorf("loading item %d: %w", id, err)
		}
		return source.FromAlgolia(tree, time.Now()), nil
	}

	var loader *source.HNLoader
	if a.db != nil {
		loader = source.NewHNLoader(a.client, a.db, a.cfg.ItemTTL)
	} else {
		loader = source.NewHNLoader(a.client, nil, a.cfg.ItemTTL)
	}
	return loader.Load(ctx, id)
}
