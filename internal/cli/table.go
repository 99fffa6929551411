package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/finsheet/finsheet/internal/model"
)

// RenderCollection writes a plain-text table of the collection's base and
// derived fields, followed by a totals row over its numeric fields.
func RenderCollection(w io.Writer, collection *model.Collection) {
	schema := model.SchemaFor(collection.Kind)

	headers := []string{schema.SeqField, "id"}
	numeric := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		headers = append(headers, f.Name)
		if f.Kind == model.FieldNumeric {
			numeric = append(numeric, f.Name)
		}
	}

	fmt.Fprintln(w, TitleStyle.Render(string(collection.Kind)))
	fmt.Fprintln(w, HeaderStyle.Render(strings.Join(headers, "\t")))

	for _, rec := range collection.Records {
		cells := []string{
			formatValue(rec[schema.SeqField]),
			shortID(rec.ID()),
		}
		for _, f := range schema.Fields {
			cells = append(cells, formatValue(rec[f.Name]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	if collection.Len() > 0 && len(numeric) > 0 {
		totals := collection.Totals(numeric...)
		cells := []string{"", "totals"}
		for _, f := range schema.Fields {
			if f.Kind == model.FieldNumeric {
				cells = append(cells, fmt.Sprintf("%.2f", totals[f.Name]))
			} else {
				cells = append(cells, "")
			}
		}
		fmt.Fprintln(w, TotalStyle.Render(strings.Join(cells, "\t")))
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.2f", t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// shortID truncates temp ids for display; canonical ids are short already.
func shortID(id string) string {
	if model.IsTempID(id) && len(id) > 12 {
		return id[:12] + "…"
	}
	return id
}
