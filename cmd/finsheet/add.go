package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/cli"
	"github.com/finsheet/finsheet/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [field=value ...]",
		Short: "Add a record, derived fields computed immediately",
		Example: `  finsheet add -k budget-section-items section=Cloud details=Hosting monthlyCost=85.50
  finsheet add -k project-tracking projectName=Atlas salary=3000 startDate=01/04/2025 endedDate=10/04/2025`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer a.shutdown()

			partial := model.Record{}
			for _, arg := range args {
				name, raw, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected field=value, got %q", arg)
				}
				partial[name] = raw
			}
			normalizePartial(a.kind, partial)

			rec, err := a.store.AddRecord(partial)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added record %s", rec.ID())))
			cli.RenderCollection(cmd.OutOrStdout(), a.store.Snapshot())
			return nil
		},
	}
	return cmd
}

// normalizePartial coerces numeric field strings to numbers so defaults
// merging and derivation see the same types a UI would send.
func normalizePartial(kind model.Kind, partial model.Record) {
	schema := model.SchemaFor(kind)
	for name := range partial {
		spec, ok := schema.Field(name)
		if !ok || spec.Kind != model.FieldNumeric {
			continue
		}
		partial[name] = partial.Number(name)
	}
}
