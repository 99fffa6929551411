package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/cli"
	"github.com/finsheet/finsheet/internal/service"
)

func removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove a record (1-based index) after confirmation",
		Args:  cobra.ExactArgs(1),
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

			var confirmer service.Confirmer = cli.NewPromptConfirmer(os.Stdin, os.Stderr)
			if yes {
				confirmer = cli.AutoConfirmer{}
			}

			removed, err := a.store.RemoveRecord(index-1, confirmer)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println("Removal declined, collection unchanged")
				return nil
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Removed record %d", index)))
			cli.RenderCollection(cmd.OutOrStdout(), a.store.Snapshot())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
