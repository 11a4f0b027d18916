// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/library/settings"
	"github.com/taibuivan/yomira-reader/pkg/pointer"
)

func (state *command) settingsCommand() *cobra.Command {
	group := &cobra.Command{
		Use:   "settings",
		Short: "Show or change reading settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current reading settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.printSettings(cmd, state.library.Settings.Get())
		},
	}

	set := state.settingsSetCommand()

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default reading settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.printSettings(cmd, state.library.Settings.Reset(cmd.Context()))
		},
	}

	group.AddCommand(show, set, reset)
	return group
}

func (state *command) settingsSetCommand() *cobra.Command {
	var (
		fontSize    int
		lineHeight  float64
		fontFamily  string
		colorScheme string
		readingMode string
		autoScroll  bool
		speed       int
	)

	set := &cobra.Command{
		Use:     "set",
		Short:   "Change one or more reading settings",
		Example: "  readerctl settings set --color-scheme sepia --speed 10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			patch := settings.Patch{}

			if flags.Changed("font-size") {
				patch.FontSize = pointer.To(fontSize)
			}
			if flags.Changed("line-height") {
				patch.LineHeight = pointer.To(lineHeight)
			}
			if flags.Changed("font-family") {
				patch.FontFamily = pointer.To(fontFamily)
			}
			if flags.Changed("color-scheme") {
				patch.ColorScheme = pointer.To(colorScheme)
			}
			if flags.Changed("reading-mode") {
				patch.ReadingMode = pointer.To(readingMode)
			}
			if flags.Changed("auto-scroll") {
				patch.AutoScroll = pointer.To(autoScroll)
			}
			if flags.Changed("speed") {
				patch.AutoScrollSpeed = pointer.To(speed)
			}

			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change; pass at least one flag")
			}

			updated, err := state.library.Settings.Update(cmd.Context(), patch)
			if err != nil {
				return describe(err)
			}
			return state.printSettings(cmd, updated)
		},
	}

	flags := set.Flags()
	flags.IntVar(&fontSize, "font-size", 0, "Font size (8-48)")
	flags.Float64Var(&lineHeight, "line-height", 0, "Line height (1-3)")
	flags.StringVar(&fontFamily, "font-family", "", "Font family")
	flags.StringVar(&colorScheme, "color-scheme", "", "light, dark, or sepia")
	flags.StringVar(&readingMode, "reading-mode", "", "vertical, horizontal, single, or double")
	flags.BoolVar(&autoScroll, "auto-scroll", false, "Start chapters with auto-scroll on")
	flags.IntVar(&speed, "speed", 0, "Auto-scroll speed (1-15)")

	_ = set.RegisterFlagCompletionFunc("color-scheme", fixedCompletion(settings.SchemeLight, settings.SchemeDark, settings.SchemeSepia))
	_ = set.RegisterFlagCompletionFunc("reading-mode", fixedCompletion(settings.ModeVertical, settings.ModeHorizontal, settings.ModeSingle, settings.ModeDouble))

	return set
}

func (state *command) printSettings(cmd *cobra.Command, current settings.Settings) error {
	if state.asJSON {
		return printJSON(cmd, current)
	}

	printTable(cmd, "Reading settings", []table.Column{
		{Title: "Setting", Width: 18},
		{Title: "Value", Width: 20},
	}, []table.Row{
		{"fontSize", strconv.Itoa(current.FontSize)},
		{"lineHeight", strconv.FormatFloat(current.LineHeight, 'g', -1, 64)},
		{"fontFamily", current.FontFamily},
		{"colorScheme", current.ColorScheme},
		{"readingMode", current.ReadingMode},
		{"autoScroll", strconv.FormatBool(current.AutoScroll)},
		{"autoScrollSpeed", strconv.Itoa(current.AutoScrollSpeed)},
	})
	return nil
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
