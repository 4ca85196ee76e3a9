package appstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yukhold/indlovu/internal/catalog"
	"github.com/yukhold/indlovu/internal/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{APIBaseURL: server.URL, AppID: "app-1"}

	return NewClient(cfg, "test-token")
}

func TestListInstances_FiltersByGranularity(t *testing.T) {
	t.Parallel()

	var gotPath, gotFilter, gotAuth string

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFilter = r.URL.Query().Get("filter[granularity]")
		gotAuth = r.Header.Get("Authorization")

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "inst-1", "attributes": map[string]any{"granularity": "WEEKLY", "processingDate": "2024-01-07"}},
				{"id": "inst-2", "attributes": map[string]any{"granularity": "WEEKLY", "processingDate": "2023-12-31"}},
			},
		})
	}))

	instances, err := client.ListInstances(context.Background(), "r4-req", catalog.Weekly)
	require.NoError(t, err)

	require.Equal(t, "/analyticsReports/r4-req/instances", gotPath)
	require.Equal(t, "WEEKLY", gotFilter)
	require.Equal(t, "Bearer test-token", gotAuth)

	// Server order is preserved as received.
	require.Len(t, instances, 2)
	require.Equal(t, "inst-1", instances[0].ID)
	require.Equal(t, "2024-01-07", instances[0].ProcessingDate)
}

func TestListInstances_EmptyGranularityOmitsFilter(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("filter[granularity]"))
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))

	instances, err := client.ListInstances(context.Background(), "r4-req", "")
	require.NoError(t, err)
	require.Empty(t, instances)
}

func TestListSegments_RemoteError(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	_, err := client.ListSegments(context.Background(), "inst-1")

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, http.StatusTooManyRequests, remoteErr.Status)
	require.Contains(t, remoteErr.Body, "rate limited")
}

func TestCreateReportRequest(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyticsReportRequests", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		data, ok := payload["data"].(map[string]any)
		require.True(t, ok)
		attrs, ok := data["attributes"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, AccessOneTimeSnapshot, attrs["accessType"])

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": "req-new", "type": "analyticsReportRequests"},
		})
	}))

	id, err := client.CreateReportRequest(context.Background(), AccessOneTimeSnapshot)
	require.NoError(t, err)
	require.Equal(t, "req-new", id)
}

func TestCreateReportRequest_MissingID(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))

	_, err := client.CreateReportRequest(context.Background(), AccessOngoing)
	require.ErrorIs(t, err, ErrMissingRequestID)
}

func TestListReports_CategoryFilter(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "APP_USAGE", r.URL.Query().Get("filter[category]"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "rep-1", "attributes": map[string]any{"name": "App Sessions", "category": "APP_USAGE"}},
			},
		})
	}))

	reports, err := client.ListReports(context.Background(), "req-1", "APP_USAGE")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "App Sessions", reports[0].Name)
}
