package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/pkg/client"
)

// withTestContext wires a CLIContext pointing at the given server into cmd.
func withTestContext(t *testing.T, cmd *cobra.Command, serverURL, format string) *bytes.Buffer {
	t.Helper()
	api, err := client.NewClient(serverURL, client.WithRetryMax(0))
	require.NoError(t, err)

	cliCtx := &CLIContext{
		Logger:       logging.NewNopLogger(),
		Client:       api,
		OutputFormat: format,
		Timeout:      5 * time.Second,
	}
	cmd.SetContext(context.WithValue(context.Background(), cliContextKey{}, cliCtx))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	return &out
}

func TestTopADRsCmd_TableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analytics/top-adrs", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(client.LabelDistribution{Items: []client.NormalizedLabel{
			{Label: "Fever", Count: 12},
			{Label: "Dizziness", Count: 5},
		}})
	}))
	defer srv.Close()

	cmd := NewTopADRsCmd()
	out := withTestContext(t, cmd, srv.URL, "table")
	require.NoError(t, cmd.Flags().Set("limit", "3"))

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Contains(t, out.String(), "Fever")
	assert.Contains(t, out.String(), "12")
	assert.Contains(t, out.String(), "Dizziness")
}

func TestTopMedicinesCmd_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []client.MedicineCount{{Name: "Paracetamol", Count: 7}},
		})
	}))
	defer srv.Close()

	cmd := NewTopMedicinesCmd()
	out := withTestContext(t, cmd, srv.URL, "json")

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.JSONEq(t, `{"items":[{"name":"Paracetamol","count":7}]}`, out.String())
}

func TestMedicineNamesCmd_OneNamePerLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]string{"names": {"Amoxicillin", "Ibuprofen"}})
	}))
	defer srv.Close()

	cmd := NewMedicineNamesCmd()
	out := withTestContext(t, cmd, srv.URL, "text")

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Equal(t, "Amoxicillin\nIbuprofen\n", out.String())
}

func TestSummaryCmd_RejectsBadTimestamp(t *testing.T) {
	cmd := NewSummaryCmd()
	withTestContext(t, cmd, "http://localhost:1", "text")
	require.NoError(t, cmd.Flags().Set("from", "yesterday"))

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFC 3339")
}

func TestSummaryCmd_PassesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-01-01T00:00:00Z", r.URL.Query().Get("from"))
		json.NewEncoder(w).Encode(client.ReactionSummary{Total: 2, Items: []client.ReactionShare{
			{Label: "Fever", Count: 2, Percent: 100},
		}})
	}))
	defer srv.Close()

	cmd := NewSummaryCmd()
	out := withTestContext(t, cmd, srv.URL, "table")
	require.NoError(t, cmd.Flags().Set("from", "2026-01-01T00:00:00Z"))

	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Contains(t, out.String(), "100.00")
}

func TestAnalyticsCmds_NoClientConfigured(t *testing.T) {
	cmd := NewTopADRsCmd()
	cliCtx := &CLIContext{Logger: logging.NewNopLogger(), OutputFormat: "text", Timeout: time.Second}
	cmd.SetContext(context.WithValue(context.Background(), cliContextKey{}, cliCtx))

	err := cmd.RunE(cmd, nil)
	assert.Error(t, err)
}
