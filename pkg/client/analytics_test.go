package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, WithRetryMax(0))
	require.NoError(t, err)
	return c, srv
}

func TestAnalytics_TopADRs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/top-adrs", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(LabelDistribution{Items: []NormalizedLabel{
			{Label: "Fever", Count: 12},
			{Label: "Rash", Count: 4},
		}})
	})

	dist, err := c.Analytics().TopADRs(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, dist.Items, 2)
	assert.Equal(t, "Fever", dist.Items[0].Label)
	assert.Equal(t, 12, dist.Items[0].Count)
}

func TestAnalytics_TopADRs_NoLimitOmitsParam(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("limit"))
		json.NewEncoder(w).Encode(LabelDistribution{})
	})

	_, err := c.Analytics().TopADRs(context.Background(), 0)
	require.NoError(t, err)
}

func TestAnalytics_TopMedicines(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/top-medicines", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []MedicineCount{{Name: "Paracetamol", Count: 7}},
		})
	})

	counts, err := c.Analytics().TopMedicines(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "Paracetamol", counts[0].Name)
}

func TestAnalytics_MedicineNames(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/medicine-names", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]string{"names": {"Amoxicillin", "Ibuprofen"}})
	})

	names, err := c.Analytics().MedicineNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Amoxicillin", "Ibuprofen"}, names)
}

func TestAnalytics_Summary_EncodesQuery(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2026-03-01T00:00:00Z", q.Get("from"))
		assert.Equal(t, "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", q.Get("medicine_id"))
		assert.False(t, q.Has("to"))
		json.NewEncoder(w).Encode(ReactionSummary{Total: 3, Items: []ReactionShare{
			{Label: "Fever", Count: 3, Percent: 100},
		}})
	})

	sum, err := c.Analytics().Summary(context.Background(), SummaryQuery{
		From:       from,
		MedicineID: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 100.0, sum.Items[0].Percent)
}

func TestAnalytics_NormalizeReactions(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/analytics/normalize-reactions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"items":[{"text":"feverr","count":2}]}`, string(body))
		json.NewEncoder(w).Encode(LabelDistribution{Items: []NormalizedLabel{{Label: "Fever", Count: 2}}})
	})

	dist, err := c.Analytics().NormalizeReactions(context.Background(), []ReactionItem{{Text: "feverr", Count: 2}})
	require.NoError(t, err)
	require.Len(t, dist.Items, 1)
	assert.Equal(t, "Fever", dist.Items[0].Label)
}

func TestAnalytics_ServerErrorSurfacesAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"code": "COMMON_010", "message": "internal server error"})
	})

	_, err := c.Analytics().TopADRs(context.Background(), 0)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "COMMON_010", apiErr.Code)
}
