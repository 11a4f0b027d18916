// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"
)

func (state *command) recentCommand() *cobra.Command {
	group := &cobra.Command{
		Use:   "recent",
		Short: "Inspect recent reading history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recently viewed series, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := state.library.Recent.List()
			if state.asJSON {
				return printJSON(cmd, entries)
			}
			if len(entries) == 0 {
				cmd.Println("No reading history.")
				return nil
			}

			rows := make([]table.Row, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, table.Row{
					truncate(entry.Title, 38),
					entry.LastChapter,
					time.UnixMilli(entry.LastViewed).Local().Format(time.DateTime),
				})
			}
			printTable(cmd, fmt.Sprintf("Recently viewed (%d)", len(entries)), []table.Column{
				{Title: "Title", Width: 40},
				{Title: "Chapter", Width: 10},
				{Title: "Viewed", Width: 20},
			}, rows)
			return nil
		},
	}

	clearHistory := &cobra.Command{
		Use:   "clear",
		Short: "Forget all reading history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state.library.Recent.Clear(cmd.Context())
			cmd.Println("History cleared.")
			return nil
		},
	}

	group.AddCommand(list, clearHistory)
	return group
}
