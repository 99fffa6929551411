package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsheet/finsheet/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	schema := model.SchemaFor(model.KindBudget)
	collection := model.NewCollection(model.KindBudget)
	collection.Append(model.NewRecord(schema, model.Record{"section": "Office", "details": "Rent", "monthlyCost": 1200.0}))
	collection.Append(model.NewRecord(schema, model.Record{"section": "Cloud", "details": "Hosting", "monthlyCost": 85.5}))

	store.Save(ctx, model.KindBudget, collection)

	loaded := store.Load(ctx, model.KindBudget)
	require.NotNil(t, loaded)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "Rent", loaded.Records[0].Text("details"))
	assert.Equal(t, 85.5, loaded.Records[1].Number("monthlyCost"))
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)
	assert.Nil(t, store.Load(context.Background(), model.KindProjectTracking))
}

func TestStore_LoadCorruptReturnsNil(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO collections (kind, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		string(model.KindBudget), `{"not":"an array"`)
	require.NoError(t, err)

	assert.Nil(t, store.Load(ctx, model.KindBudget))
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	schema := model.SchemaFor(model.KindSubscriptionModel)

	first := model.NewCollection(model.KindSubscriptionModel)
	first.Append(model.NewRecord(schema, model.Record{"planName": "Basic"}))
	store.Save(ctx, model.KindSubscriptionModel, first)

	second := model.NewCollection(model.KindSubscriptionModel)
	second.Append(model.NewRecord(schema, model.Record{"planName": "Pro"}))
	second.Append(model.NewRecord(schema, model.Record{"planName": "Enterprise"}))
	store.Save(ctx, model.KindSubscriptionModel, second)

	loaded := store.Load(ctx, model.KindSubscriptionModel)
	require.NotNil(t, loaded)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "Pro", loaded.Records[0].Text("planName"))
}

func TestStore_KindsAreNamespaced(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	budget := model.NewCollection(model.KindBudget)
	budget.Append(model.NewRecord(model.SchemaFor(model.KindBudget), model.Record{"details": "Rent"}))
	store.Save(ctx, model.KindBudget, budget)

	assert.Nil(t, store.Load(ctx, model.KindSubscriptionModel))
	assert.NotNil(t, store.Load(ctx, model.KindBudget))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
