package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/cli"
	"github.com/finsheet/finsheet/internal/model"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <rows.json>",
		Short: "Import plain row objects from a JSON file",
		Long: `import reads a JSON array of row objects, as produced by an exporter or
spreadsheet converter, and adds each row as a record. Derived fields are
computed per row; rows without an id get a temp id and sync as creates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read rows file: %w", err)
			}

			var rows []model.Record
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("rows file is not a JSON array of objects: %w", err)
			}

			a, err := newApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.shutdown()

			bar := progressbar.NewOptions(len(rows),
				progressbar.OptionSetDescription("Importing rows"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			imported := 0
			for i, row := range rows {
				if _, err := a.store.AddRecord(row); err != nil {
					fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(
						fmt.Sprintf("row %d skipped: %v", i+1, err)))
				} else {
					imported++
				}
				_ = bar.Add(1)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Imported %d of %d rows into %s", imported, len(rows), a.kind)))
			return nil
		},
	}
}
