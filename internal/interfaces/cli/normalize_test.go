package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamotph/adr-intelligence/pkg/client"
)

func TestCollapseTexts(t *testing.T) {
	items := collapseTexts([]string{"fever", " rash ", "fever", "", "fever"})

	assert.Equal(t, []client.ReactionItem{
		{Text: "fever", Count: 3},
		{Text: "rash", Count: 1},
	}, items)
}

func TestCollapseTexts_Empty(t *testing.T) {
	assert.Empty(t, collapseTexts(nil))
	assert.Empty(t, collapseTexts([]string{"", "  "}))
}

func TestNormalizeCmd_SendsCollapsedItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"items":[{"text":"fever","count":2},{"text":"rash","count":1}]}`, string(body))
		json.NewEncoder(w).Encode(client.LabelDistribution{Items: []client.NormalizedLabel{
			{Label: "Fever", Count: 2},
			{Label: "Rash", Count: 1},
		}})
	}))
	defer srv.Close()

	cmd := NewNormalizeCmd()
	out := withTestContext(t, cmd, srv.URL, "table")

	require.NoError(t, cmd.RunE(cmd, []string{"fever", "rash", "fever"}))
	assert.Contains(t, out.String(), "Fever")
}

func TestNormalizeCmd_ReadsInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reactions.txt")
	require.NoError(t, os.WriteFile(path, []byte("fever\n\nnausea\n"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"items":[{"text":"fever","count":1},{"text":"nausea","count":1}]}`, string(body))
		json.NewEncoder(w).Encode(client.LabelDistribution{})
	}))
	defer srv.Close()

	cmd := NewNormalizeCmd()
	withTestContext(t, cmd, srv.URL, "text")
	require.NoError(t, cmd.Flags().Set("input", path))

	require.NoError(t, cmd.RunE(cmd, nil))
}

func TestNormalizeCmd_NoInput(t *testing.T) {
	cmd := NewNormalizeCmd()
	withTestContext(t, cmd, "http://localhost:1", "text")

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reaction texts")
}

func TestNormalizeCmd_MissingInputFile(t *testing.T) {
	cmd := NewNormalizeCmd()
	withTestContext(t, cmd, "http://localhost:1", "text")
	require.NoError(t, cmd.Flags().Set("input", filepath.Join(t.TempDir(), "absent.txt")))

	assert.Error(t, cmd.RunE(cmd, nil))
}
