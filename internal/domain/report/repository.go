package report

import (
	"context"

	"github.com/google/uuid"
)

// ReportRepository is the persistence contract for submitted reports.
//
// Implementations live in internal/infrastructure/database; the analytics
// and backfill services depend only on this interface.
type ReportRepository interface {
	// RawReactionBuckets returns every distinct raw reaction text with the
	// number of reports carrying it. Order is unspecified.
	RawReactionBuckets(ctx context.Context) ([]ReactionBucket, error)

	// MedicineReferenceCounts returns, per medicine id, how many reports
	// reference that medicine.
	MedicineReferenceCounts(ctx context.Context) (map[uuid.UUID]int, error)

	// NormalizedReactionRows returns the stored normalized reaction values
	// (comma-joined canonical lists) for reports matching the filter.
	NormalizedReactionRows(ctx context.Context, filter SummaryFilter) ([]string, error)

	// PageForBackfill returns up to pageSize report rows ordered by id,
	// starting strictly after the given id. A zero uuid starts from the top.
	PageForBackfill(ctx context.Context, afterID uuid.UUID, pageSize int) ([]ReportRow, error)

	// SetReactionNormalized stores the normalized value for one report row.
	SetReactionNormalized(ctx context.Context, id uuid.UUID, normalized string) error
}

// MedicineRepository is the persistence contract for the medicine master
// list.
type MedicineRepository interface {
	// ListMedicines returns every medicine record. Order is unspecified.
	ListMedicines(ctx context.Context) ([]MedicineRecord, error)
}
