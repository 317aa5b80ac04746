package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/ripple/internal/config"
	"github.com/llehouerou/ripple/internal/credentials"
	"github.com/llehouerou/ripple/internal/state"
)

func infoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print configuration, credential and state locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printInfo(cmd.OutOrStdout(), *opts)
		},
	}
}

func printInfo(w io.Writer, opts options) error {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	fmt.Fprintf(w, "config:      %s\n", describeFile(configPath))

	store, err := credentialStore()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "credentials: %s\n", describeFile(store.Path()))
	creds, err := store.Load()
	switch {
	case err == nil:
		fmt.Fprintf(w, "account:     %s on %s\n", creds.Username, creds.Server)
	case errors.Is(err, credentials.ErrNotFound):
		fmt.Fprintln(w, "account:     not logged in")
	default:
		fmt.Fprintf(w, "account:     %v\n", err)
	}

	statePath, err := state.DefaultPath()
	if err != nil {
		return fmt.Errorf("state path: %w", err)
	}
	fmt.Fprintf(w, "state:       %s\n", describeFile(statePath))

	if opts.debugPath != "" {
		fmt.Fprintf(w, "debug log:   %s\n", describeFile(opts.debugPath))
	}
	return nil
}

func describeFile(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return path + " (missing)"
	}
	return fmt.Sprintf("%s (%s, modified %s)", path,
		humanize.Bytes(uint64(fi.Size())), humanize.Time(fi.ModTime())) //nolint:gosec // file sizes are non-negative
}
