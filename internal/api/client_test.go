package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsheet/finsheet/internal/common"
	"github.com/finsheet/finsheet/internal/model"
)

func TestClient_FetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/budget-section-items", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"1","details":"Rent","monthlyCost":1200},{"id":"2","details":"Power","monthlyCost":90}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	records, err := client.FetchAll(context.Background(), model.KindBudget)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID())
	assert.Equal(t, 1200.0, records[0].Number("monthlyCost"))
}

func TestClient_FetchAllNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.FetchAll(context.Background(), model.KindBudget)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBackendStatus)
}

func TestClient_CreateItemReturnsCanonicalID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/project-tracking/item", r.URL.Path)

		var rec model.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		assert.True(t, model.IsTempID(rec.ID()))

		created := rec.Clone()
		created.SetID("srv-101")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(created))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	rec := model.NewRecord(model.SchemaFor(model.KindProjectTracking), model.Record{"projectName": "Atlas"})
	id, err := client.CreateItem(context.Background(), model.KindProjectTracking, rec)
	require.NoError(t, err)
	assert.Equal(t, "srv-101", id)
}

func TestClient_CreateItemMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"details":"no id here"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.CreateItem(context.Background(), model.KindBudget, model.Record{})
	assert.Error(t, err)
}

func TestClient_UpdateItemSendsFullRecord(t *testing.T) {
	var got model.Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/subscription-revenue/srv-5", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	rec := model.Record{"id": "srv-5", "clientName": "Acme", "projectedMonthlyRevenue": 250.0, "projectedAnnualRevenue": 3000.0}
	require.NoError(t, client.UpdateItem(context.Background(), model.KindSubscriptionRevenue, "srv-5", rec))

	assert.Equal(t, "Acme", got.Text("clientName"))
	assert.Equal(t, 3000.0, got.Number("projectedAnnualRevenue"), "derived fields travel with the record")
}

func TestClient_DeleteItem(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "200", status: http.StatusOK},
		{name: "204", status: http.StatusNoContent},
		{name: "404 is an error at the transport layer", status: http.StatusNotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client, err := NewClient(server.URL)
			require.NoError(t, err)

			err = client.DeleteItem(context.Background(), model.KindBudget, "7")
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrBackendStatus)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClient_BulkReplace(t *testing.T) {
	var got []model.Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/budget-section-items", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	records := []model.Record{{"id": "1"}, {"id": "2"}}
	require.NoError(t, client.BulkReplace(context.Background(), model.KindBudget, records))
	assert.Len(t, got, 2)
}

func TestClient_TimeoutIsFailureNotPanic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithTimeouts(20*time.Millisecond, 20*time.Millisecond, 20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.FetchAll(context.Background(), model.KindBudget)
	assert.Error(t, err)
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
