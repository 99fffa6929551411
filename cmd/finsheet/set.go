package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/cli"
)

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <index> <field> <value>",
		Short: "Set one field of a record (1-based index)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index < 1 {
				return fmt.Errorf("index must be a positive number, got %q", args[0])
			}

			a, err := newApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.shutdown()

			if err := a.store.MutateField(index-1, args[1], args[2]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Set %s on record %d", args[1], index)))
			cli.RenderCollection(cmd.OutOrStdout(), a.store.Snapshot())
			return nil
		},
	}
}
