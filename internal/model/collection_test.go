package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	schema := SchemaFor(KindProjectTracking)

	t.Run("defaults merged under partial", func(t *testing.T) {
		rec := NewRecord(schema, Record{"projectName": "Atlas", "salary": 3000.0})

		assert.Equal(t, "Atlas", rec.Text("projectName"))
		assert.Equal(t, 3000.0, rec.Number("salary"))
		assert.Equal(t, 1.0, rec.Number("resources"), "resources defaults to 1")
		assert.Equal(t, "", rec.Text("startDate"))
	})

	t.Run("temp id assigned when absent", func(t *testing.T) {
		rec := NewRecord(schema, Record{})
		require.NotEmpty(t, rec.ID())
		assert.True(t, IsTempID(rec.ID()))
	})

	t.Run("caller-supplied id kept", func(t *testing.T) {
		rec := NewRecord(schema, Record{"id": "42"})
		assert.Equal(t, "42", rec.ID())
		assert.False(t, IsTempID(rec.ID()))
	})

	t.Run("two records get distinct ids", func(t *testing.T) {
		a := NewRecord(schema, Record{})
		b := NewRecord(schema, Record{})
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestCollection_Renumber(t *testing.T) {
	t.Run("flat collection numbers contiguously", func(t *testing.T) {
		c := NewCollection(KindProjectTracking)
		c.Append(NewRecord(SchemaFor(KindProjectTracking), Record{}))
		c.Append(NewRecord(SchemaFor(KindProjectTracking), Record{}))
		c.Append(NewRecord(SchemaFor(KindProjectTracking), Record{}))

		for i, rec := range c.Records {
			assert.Equal(t, float64(i+1), rec.Number("slNo"))
		}
	})

	t.Run("budget numbering restarts per section", func(t *testing.T) {
		schema := SchemaFor(KindBudget)
		c := NewCollection(KindBudget)
		c.Append(NewRecord(schema, Record{"section": "Office"}))
		c.Append(NewRecord(schema, Record{"section": "Cloud"}))
		c.Append(NewRecord(schema, Record{"section": "Office"}))

		assert.Equal(t, 1.0, c.Records[0].Number("srNo"))
		assert.Equal(t, 1.0, c.Records[1].Number("srNo"))
		assert.Equal(t, 2.0, c.Records[2].Number("srNo"))
	})
}

func TestCollection_Remove(t *testing.T) {
	schema := SchemaFor(KindProjectTracking)
	c := NewCollection(KindProjectTracking)
	c.Append(NewRecord(schema, Record{"id": "a"}))
	c.Append(NewRecord(schema, Record{"id": "b"}))
	c.Append(NewRecord(schema, Record{"id": "c"}))

	removed, err := c.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.ID())

	require.Equal(t, 2, c.Len())
	assert.Equal(t, "a", c.Records[0].ID())
	assert.Equal(t, "c", c.Records[1].ID())
	assert.Equal(t, 1.0, c.Records[0].Number("slNo"))
	assert.Equal(t, 2.0, c.Records[1].Number("slNo"))

	_, err = c.Remove(5)
	assert.Error(t, err)
}

func TestCollection_ReplaceID(t *testing.T) {
	schema := SchemaFor(KindBudget)
	c := NewCollection(KindBudget)
	rec := NewRecord(schema, Record{})
	tempID := rec.ID()
	c.Append(rec)

	require.True(t, c.ReplaceID(tempID, "srv-7"))
	assert.Equal(t, "srv-7", c.Records[0].ID())
	assert.False(t, c.ReplaceID(tempID, "srv-8"), "temp id is consumed exactly once")
	require.NoError(t, c.CheckUniqueIDs())
}

func TestCollection_Totals(t *testing.T) {
	schema := SchemaFor(KindBudget)
	c := NewCollection(KindBudget)
	c.Append(NewRecord(schema, Record{"section": "Office", "monthlyCost": 100.0}))
	c.Append(NewRecord(schema, Record{"section": "Office", "monthlyCost": 50.5}))
	c.Append(NewRecord(schema, Record{"section": "Cloud", "monthlyCost": 9.5}))

	totals := c.Totals("monthlyCost")
	assert.InDelta(t, 160.0, totals["monthlyCost"], 1e-9)

	bydept := c.SectionTotals("monthlyCost")
	assert.InDelta(t, 150.5, bydept["Office"]["monthlyCost"], 1e-9)
	assert.InDelta(t, 9.5, bydept["Cloud"]["monthlyCost"], 1e-9)
}

func TestCollection_JSONRoundTrip(t *testing.T) {
	schema := SchemaFor(KindSubscriptionRevenue)
	c := NewCollection(KindSubscriptionRevenue)
	c.Append(NewRecord(schema, Record{"clientName": "Acme", "projectedMonthlyRevenue": 120.0}))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	restored := NewCollection(KindSubscriptionRevenue)
	require.NoError(t, json.Unmarshal(data, restored))
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, "Acme", restored.Records[0].Text("clientName"))
	assert.Equal(t, 120.0, restored.Records[0].Number("projectedMonthlyRevenue"))
}

func TestCollection_EmptyMarshalsAsArray(t *testing.T) {
	data, err := json.Marshal(NewCollection(KindBudget))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
