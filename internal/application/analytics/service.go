package analytics

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/internal/normalization"
	"github.com/gamotph/adr-intelligence/pkg/errors"
)

// summaryTopN is how many labels the reaction summary names before rolling
// the remainder into "Other".
const summaryTopN = 5

// Service answers the analytics read queries over reports and medicines.
type Service struct {
	reports   report.ReportRepository
	medicines report.MedicineRepository
	cleaner   *CleaningService
	medNorm   *normalization.MedicineNormalizer

	medicineThreshold int
	logger            logging.Logger
}

// NewService wires the analytics service.
func NewService(
	reports report.ReportRepository,
	medicines report.MedicineRepository,
	cleaner *CleaningService,
	medNorm *normalization.MedicineNormalizer,
	medicineThreshold int,
	log logging.Logger,
) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Service{
		reports:           reports,
		medicines:         medicines,
		cleaner:           cleaner,
		medNorm:           medNorm,
		medicineThreshold: medicineThreshold,
		logger:            log.Named("analytics"),
	}
}

// TopADRs returns the normalized reaction distribution. Truncation happens
// after normalization so the cut never splits a merged label. A nil limit
// means unlimited.
func (s *Service) TopADRs(ctx context.Context, limit *int) (*report.LabelDistribution, error) {
	buckets, err := s.reports.RawReactionBuckets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "load raw reaction buckets")
	}

	dist := s.cleaner.NormalizeReactionItems(ctx, buckets)
	if limit != nil && *limit >= 0 && len(dist.Items) > *limit {
		dist.Items = dist.Items[:*limit]
	}
	return dist, nil
}

// TopMedicines counts reports per canonical medicine name. Medicine records
// that normalize to nothing are silently excluded; multiple records mapping
// to the same canonical name merge their counts. A nil limit means
// unlimited.
func (s *Service) TopMedicines(ctx context.Context, limit *int) ([]report.MedicineCount, error) {
	canonical, err := s.canonicalMedicineNames(ctx)
	if err != nil {
		return nil, err
	}

	refCounts, err := s.reports.MedicineReferenceCounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "load medicine reference counts")
	}

	totals := make(map[string]int)
	for id, count := range refCounts {
		name, ok := canonical[id]
		if !ok {
			continue
		}
		totals[name] += count
	}

	out := make([]report.MedicineCount, 0, len(totals))
	for name, count := range totals {
		out = append(out, report.MedicineCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	if limit != nil && *limit >= 0 && len(out) > *limit {
		out = out[:*limit]
	}
	return out, nil
}

// MedicineNames returns the distinct canonical medicine names, ascending.
func (s *Service) MedicineNames(ctx context.Context) ([]string, error) {
	canonical, err := s.canonicalMedicineNames(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(canonical))
	names := make([]string, 0, len(canonical))
	for _, name := range canonical {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// canonicalMedicineNames maps each medicine id to its deterministic
// canonical name: the first element of the sorted normalized union of the
// record's brand and generic columns.
func (s *Service) canonicalMedicineNames(ctx context.Context) (map[uuid.UUID]string, error) {
	records, err := s.medicines.ListMedicines(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "load medicine master list")
	}

	canonical := make(map[uuid.UUID]string, len(records))
	for _, rec := range records {
		names := s.medNorm.NormalizeBrandAndGeneric(rec.BrandNameText, rec.GenericNameText, s.medicineThreshold)
		if len(names) == 0 {
			continue
		}
		canonical[rec.ID] = names[0]
	}
	return canonical, nil
}

// ReactionSummary aggregates stored normalized reactions over the filter
// window into the top labels plus an "Other" rollup with percentages.
func (s *Service) ReactionSummary(ctx context.Context, filter report.SummaryFilter) (*report.ReactionSummary, error) {
	rows, err := s.reports.NormalizedReactionRows(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "load normalized reaction rows")
	}

	counts := make(map[string]int)
	total := 0
	for _, row := range rows {
		for _, label := range strings.Split(row, ",") {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			counts[label]++
			total++
		}
	}
	if total == 0 {
		return &report.ReactionSummary{Items: []report.ReactionShare{}}, nil
	}

	type labelCount struct {
		label string
		count int
	}
	ordered := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		ordered = append(ordered, labelCount{label, count})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].label < ordered[j].label
	})

	summary := &report.ReactionSummary{Total: total}
	other := 0
	for i, lc := range ordered {
		if i < summaryTopN {
			summary.Items = append(summary.Items, report.ReactionShare{
				Label:   lc.label,
				Count:   lc.count,
				Percent: percentOf(lc.count, total),
			})
			continue
		}
		other += lc.count
	}
	if other > 0 {
		summary.Items = append(summary.Items, report.ReactionShare{
			Label:   "Other",
			Count:   other,
			Percent: percentOf(other, total),
		})
	}
	return summary, nil
}

func percentOf(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*10000) / 100
}
