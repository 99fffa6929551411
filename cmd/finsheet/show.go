package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/bootstrap"
	"github.com/finsheet/finsheet/internal/cli"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the collection with derived fields and totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.shutdown()

			if a.source != bootstrap.SourceBackend {
				cli.WarnOffline(os.Stderr, string(a.source))
			}
			cli.RenderCollection(os.Stdout, a.store.Snapshot())
			return nil
		},
	}
}
