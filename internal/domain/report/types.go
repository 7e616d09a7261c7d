// Package report holds the domain types and persistence contracts for
// submitted adverse-drug-reaction reports and the medicine master list.
package report

import (
	"time"

	"github.com/google/uuid"
)

// ReactionBucket is a raw reaction text together with how many reports carry
// it verbatim. Buckets are the input of the cleaning pipeline; the text is
// uncleaned free text exactly as reporters typed it.
type ReactionBucket struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// NormalizedLabel is one canonical label with its aggregated report weight.
type NormalizedLabel struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelDistribution is the ordered output of the cleaning pipeline:
// labels sorted by descending weight, ties in first-seen order.
type LabelDistribution struct {
	Items []NormalizedLabel `json:"items"`
}

// MedicineRecord is one row of the medicine master list. Brand and generic
// columns are free text and may each hold several delimited names.
type MedicineRecord struct {
	ID              uuid.UUID `json:"id"`
	BrandNameText   string    `json:"brandName"`
	GenericNameText string    `json:"genericName"`
}

// MedicineCount pairs a canonical medicine name with the number of reports
// that reference it.
type MedicineCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SummaryFilter narrows the reaction summary to a reporting window and,
// optionally, a single medicine.
type SummaryFilter struct {
	From       time.Time
	To         time.Time
	MedicineID *uuid.UUID
}

// ReactionShare is one slice of the reaction summary: a label, its report
// count, and its share of the filtered total in percent.
type ReactionShare struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ReactionSummary is the top reactions for a window, with everything past
// the cut rolled into an "Other" share.
type ReactionSummary struct {
	Total int             `json:"total"`
	Items []ReactionShare `json:"items"`
}

// ReportRow is the subset of a report row the backfill needs: the key, the
// raw reaction text, and the normalized value already stored, if any.
type ReportRow struct {
	ID                 uuid.UUID
	ReactionText       string
	ReactionNormalized string
}
