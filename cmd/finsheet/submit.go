package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/bulk"
	"github.com/finsheet/finsheet/internal/cli"
)

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Replace the entire remote collection with the local one",
		Long: `submit posts the full collection to the backend as a replace, not a diff.
Use it to bring a backend that missed per-record syncs back in line with
the local state.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.shutdown()

			switch a.submitter.Submit(cmd.Context()) {
			case bulk.StatusSuccess:
				fmt.Println(cli.SuccessStyle.Render(
					fmt.Sprintf("Submitted %d %s records", a.store.Len(), a.kind)))
				return nil
			case bulk.StatusError:
				return fmt.Errorf("submit failed: %w", a.submitter.Err())
			default:
				return fmt.Errorf("submit already in progress")
			}
		},
	}
}
