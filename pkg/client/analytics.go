package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// AnalyticsClient exposes the /api/v1/analytics endpoints.
type AnalyticsClient struct {
	client *Client
}

// NormalizedLabel is one canonical label with its aggregated report weight.
type NormalizedLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelDistribution is an ordered list of normalized labels.
type LabelDistribution struct {
	Items []NormalizedLabel `json:"items"`
}

// MedicineCount pairs a canonical medicine name with its report count.
type MedicineCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ReactionShare is one slice of the reaction summary.
type ReactionShare struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ReactionSummary is the top reactions for a window plus an "Other" rollup.
type ReactionSummary struct {
	Total int             `json:"total"`
	Items []ReactionShare `json:"items"`
}

// ReactionItem is one raw reaction text with its report count, input to
// ad-hoc normalization.
type ReactionItem struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// SummaryQuery narrows the reaction summary. Zero-value fields are omitted.
type SummaryQuery struct {
	From       time.Time
	To         time.Time
	MedicineID string
}

// TopADRs fetches the top normalized reactions. limit <= 0 uses the server
// default.
func (a *AnalyticsClient) TopADRs(ctx context.Context, limit int) (*LabelDistribution, error) {
	path := "/api/v1/analytics/top-adrs"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var out LabelDistribution
	if err := a.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopMedicines fetches the most-reported medicines.
func (a *AnalyticsClient) TopMedicines(ctx context.Context, limit int) ([]MedicineCount, error) {
	path := "/api/v1/analytics/top-medicines"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var out struct {
		Items []MedicineCount `json:"items"`
	}
	if err := a.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// MedicineNames fetches the distinct canonical medicine names.
func (a *AnalyticsClient) MedicineNames(ctx context.Context) ([]string, error) {
	var out struct {
		Names []string `json:"names"`
	}
	if err := a.client.get(ctx, "/api/v1/analytics/medicine-names", &out); err != nil {
		return nil, err
	}
	return out.Names, nil
}

// Summary fetches the reaction summary for an optional window and medicine.
func (a *AnalyticsClient) Summary(ctx context.Context, q SummaryQuery) (*ReactionSummary, error) {
	params := url.Values{}
	if !q.From.IsZero() {
		params.Set("from", q.From.Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.Format(time.RFC3339))
	}
	if q.MedicineID != "" {
		params.Set("medicine_id", q.MedicineID)
	}
	path := "/api/v1/analytics/reaction-summary"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out ReactionSummary
	if err := a.client.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NormalizeReactions submits raw buckets for ad-hoc cleaning.
func (a *AnalyticsClient) NormalizeReactions(ctx context.Context, items []ReactionItem) (*LabelDistribution, error) {
	body := struct {
		Items []ReactionItem `json:"items"`
	}{Items: items}
	var out LabelDistribution
	if err := a.client.post(ctx, "/api/v1/analytics/normalize-reactions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
