package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/bootstrap"
	"github.com/finsheet/finsheet/internal/cli"
)

func pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch the collection from the backend (cache fallback)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.shutdown()

			switch a.source {
			case bootstrap.SourceBackend:
				fmt.Println(cli.SuccessStyle.Render(
					fmt.Sprintf("Pulled %d %s records from backend", a.store.Len(), a.kind)))
			case bootstrap.SourceCache:
				cli.WarnOffline(os.Stderr, "cache")
				fmt.Printf("Loaded %d %s records from local cache\n", a.store.Len(), a.kind)
			case bootstrap.SourceEmpty:
				cli.WarnOffline(os.Stderr, "empty")
				fmt.Println("No backend and no cache; starting with an empty collection")
			}
			return nil
		},
	}
}
