// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/library/favorites"
)

func (state *command) favoritesCommand() *cobra.Command {
	group := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite series",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := state.library.Favorites.List()
			if state.asJSON {
				return printJSON(cmd, entries)
			}
			if len(entries) == 0 {
				cmd.Println("No favorites yet.")
				return nil
			}

			rows := make([]table.Row, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, table.Row{truncate(entry.AnimeName, 38), entry.SourceID})
			}
			printTable(cmd, fmt.Sprintf("Favorites (%d)", len(entries)), []table.Column{
				{Title: "Name", Width: 40},
				{Title: "Source ID", Width: 30},
			}, rows)
			return nil
		},
	}

	var image string
	add := &cobra.Command{
		Use:     "add <source-id> <name>",
		Short:   "Add a series to favorites",
		Example: "  readerctl favorites add one-piece \"One Piece\" --image https://cdn.example/op.jpg",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state.library.Favorites.Add(cmd.Context(), favorites.Entry{
				SourceID:  args[0],
				AnimeName: args[1],
				ImageSrc:  image,
			})
			cmd.Printf("Added %s\n", args[0])
			return nil
		},
	}
	add.Flags().StringVar(&image, "image", "", "Cover image URL")

	remove := &cobra.Command{
		Use:     "remove <source-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a series from favorites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !state.library.Favorites.IsFavorite(args[0]) {
				return fmt.Errorf("%s is not a favorite", args[0])
			}
			state.library.Favorites.Remove(cmd.Context(), args[0])
			cmd.Printf("Removed %s\n", args[0])
			return nil
		},
	}

	group.AddCommand(list, add, remove)
	return group
}
