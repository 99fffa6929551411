package model

// Totals is a pure fold over the collection summing the named numeric
// fields. Totals are never stored on the collection, so they cannot drift
// from the underlying records. Absent or non-numeric values contribute 0.
func (c *Collection) Totals(fields ...string) map[string]float64 {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		out[f] = 0
	}
	for _, rec := range c.Records {
		for _, f := range fields {
			out[f] += rec.Number(f)
		}
	}
	return out
}

// SectionTotals folds the named fields per section. Kinds without a
// section field fold everything under the empty section name.
func (c *Collection) SectionTotals(fields ...string) map[string]map[string]float64 {
	schema := SchemaFor(c.Kind)
	out := make(map[string]map[string]float64)
	for _, rec := range c.Records {
		section := ""
		if schema.Section != "" {
			section = rec.Text(schema.Section)
		}
		bucket, ok := out[section]
		if !ok {
			bucket = make(map[string]float64, len(fields))
			out[section] = bucket
		}
		for _, f := range fields {
			bucket[f] += rec.Number(f)
		}
	}
	return out
}
