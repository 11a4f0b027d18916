// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements readerctl, the operator command line for the persisted
library.

It opens the same backend the server uses (STORE_BACKEND and friends) and
reads or edits favorites, recent history, and reading settings directly.
Lists print as tables; --json prints the raw documents instead.
*/
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-reader/internal/app"
	"github.com/taibuivan/yomira-reader/internal/platform/config"
	"github.com/taibuivan/yomira-reader/internal/platform/constants"
)

// Opener builds the library the commands operate on.
type Opener func(ctx context.Context) (*app.App, error)

// command carries what every subcommand needs.
type command struct {
	open    Opener
	library *app.App
	asJSON  bool
}

// NewRootCommand assembles readerctl. Output goes to out.
func NewRootCommand(open Opener, out io.Writer) *cobra.Command {
	state := &command{open: open}

	root := &cobra.Command{
		Use:           "readerctl",
		Short:         "Inspect and edit the reader's persisted library",
		Long:          "readerctl reads and writes favorites, recent history, and reading settings\nin the store configured by STORE_BACKEND.",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			library, err := state.open(cmd.Context())
			if err != nil {
				return err
			}
			state.library = library
			return nil
		},
	}

	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().BoolVar(&state.asJSON, "json", false, "Print JSON instead of a table")

	root.AddCommand(
		state.favoritesCommand(),
		state.recentCommand(),
		state.settingsCommand(),
	)
	return root
}

// Closing wraps open so that release closes whatever library it handed out.
// Call release after the command returns, on success and on error alike.
func Closing(open Opener) (wrapped Opener, release func()) {
	var opened []*app.App

	wrapped = func(ctx context.Context) (*app.App, error) {
		library, err := open(ctx)
		if library != nil {
			opened = append(opened, library)
		}
		return library, err
	}

	release = func() {
		for _, library := range opened {
			library.Close()
		}
		opened = nil
	}
	return wrapped, release
}

// Execute runs readerctl against the configured backend and exits non-zero on error.
func Execute() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With(slog.String("app", "readerctl"))

	open := func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return app.Open(ctx, cfg, logger)
	}

	open, release := Closing(open)
	root := NewRootCommand(open, os.Stdout)
	cc.Init(&cc.Config{
		RootCmd:       root,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})

	err := root.ExecuteContext(context.Background())
	release()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "readerctl:", err)
		os.Exit(1)
	}
}

// printJSON writes value as indented JSON.
func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
