// Package analytics implements the read-side services: reaction cleaning,
// top-ADR and top-medicine distributions, and the reaction summary.
package analytics

import (
	"context"
	"sort"
	"strings"

	"github.com/gamotph/adr-intelligence/internal/domain/report"
	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/gamotph/adr-intelligence/internal/intelligence/adr_ner"
	"github.com/gamotph/adr-intelligence/internal/normalization"
)

// UnmatchedPolicy decides what happens to a mention that is neither
// canonical, garbage, nor medical-like.
type UnmatchedPolicy string

const (
	// UnmatchedPolicyDrop discards unmatched mentions. The default: a label
	// chart full of one-off free text is noise, not signal.
	UnmatchedPolicyDrop UnmatchedPolicy = "drop"

	// UnmatchedPolicyUnspecified rolls unmatched mentions into a single
	// "Unspecified" label so their volume stays visible.
	UnmatchedPolicyUnspecified UnmatchedPolicy = "unspecified"
)

// UnmappedMedicalLabel is the bucket for mentions that look medical but
// match no canonical term.
const UnmappedMedicalLabel = "Medical (Unmapped)"

// UnspecifiedLabel is the rollup bucket under UnmatchedPolicyUnspecified.
const UnspecifiedLabel = "Unspecified"

// Mention outcomes reported to the metrics recorder.
const (
	OutcomeMatched     = "matched"
	OutcomeGarbage     = "garbage"
	OutcomeUnmapped    = "unmapped_medical"
	OutcomeUnspecified = "unspecified"
	OutcomeDropped     = "dropped"
)

// NormalizationMetrics counts per-mention outcomes. Implementations must be
// safe for concurrent use; a nil recorder disables counting.
type NormalizationMetrics interface {
	ObserveMentionOutcome(outcome string)
}

// CleaningService turns raw reaction buckets into a canonical label
// distribution.
type CleaningService struct {
	reactions *normalization.ReactionNormalizer
	extractor adr_ner.Extractor
	policy    UnmatchedPolicy

	singleThreshold int
	listThreshold   int

	metrics NormalizationMetrics
	logger  logging.Logger
}

// NewCleaningService wires the cleaning pipeline. extractor may be nil
// (NER not configured); metrics may be nil.
func NewCleaningService(
	reactions *normalization.ReactionNormalizer,
	extractor adr_ner.Extractor,
	policy UnmatchedPolicy,
	singleThreshold, listThreshold int,
	metrics NormalizationMetrics,
	log logging.Logger,
) *CleaningService {
	if policy == "" {
		policy = UnmatchedPolicyDrop
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &CleaningService{
		reactions:       reactions,
		extractor:       extractor,
		policy:          policy,
		singleThreshold: singleThreshold,
		listThreshold:   listThreshold,
		metrics:         metrics,
		logger:          log.Named("cleaning"),
	}
}

type aggEntry struct {
	display string
	weight  int
	order   int
}

// NormalizeReactionItems runs the full cleaning pipeline over raw buckets.
//
// Per bucket: collapse whitespace and skip blanks; weight is the report
// count, floored at one; mentions come from NER when available, then from
// list splitting, then the whole cleaned text stands alone. Each mention is
// labeled or discarded, and labels aggregate case-insensitively with the
// first-seen display casing. The result is sorted by descending weight,
// ties in first-seen order.
func (s *CleaningService) NormalizeReactionItems(ctx context.Context, buckets []report.ReactionBucket) *report.LabelDistribution {
	agg := make(map[string]*aggEntry)
	order := 0

	for _, bucket := range buckets {
		cleaned := strings.Join(strings.Fields(bucket.Text), " ")
		if cleaned == "" {
			continue
		}
		weight := bucket.Count
		if weight < 1 {
			weight = 1
		}

		for _, mention := range s.mentionsFor(ctx, cleaned) {
			label, ok := s.labelFor(mention)
			if !ok {
				continue
			}
			key := strings.ToLower(label)
			entry, exists := agg[key]
			if !exists {
				entry = &aggEntry{display: label, order: order}
				order++
				agg[key] = entry
			}
			entry.weight += weight
		}
	}

	entries := make([]*aggEntry, 0, len(agg))
	for _, e := range agg {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].order < entries[j].order
	})

	items := make([]report.NormalizedLabel, len(entries))
	for i, e := range entries {
		items[i] = report.NormalizedLabel{Label: e.display, Count: e.weight}
	}
	return &report.LabelDistribution{Items: items}
}

// mentionsFor produces the mention list for one cleaned bucket text. NER
// failures and empty NER results fall through to list splitting; when that
// also yields nothing, the whole text is treated as a single mention.
func (s *CleaningService) mentionsFor(ctx context.Context, cleaned string) []string {
	if s.extractor != nil {
		mentions, err := s.extractor.ExtractMentions(ctx, cleaned)
		if err != nil {
			s.logger.Warn("mention extraction failed, falling back to splitting",
				logging.Err(err))
		} else if len(mentions) > 0 {
			return mentions
		}
	}

	if list := s.reactions.NormalizeADRList(cleaned, s.listThreshold); len(list) > 0 {
		return list
	}
	return []string{cleaned}
}

// labelFor classifies one mention. The boolean is false when the mention is
// discarded.
func (s *CleaningService) labelFor(mention string) (string, bool) {
	if canonical, ok := s.reactions.NormalizeADR(mention, s.singleThreshold); ok {
		s.observe(OutcomeMatched)
		return canonical, true
	}
	if normalization.IsGarbage(mention) {
		s.observe(OutcomeGarbage)
		return "", false
	}
	if normalization.IsMedicalLike(mention) {
		s.observe(OutcomeUnmapped)
		return UnmappedMedicalLabel, true
	}
	if s.policy == UnmatchedPolicyUnspecified {
		s.observe(OutcomeUnspecified)
		return UnspecifiedLabel, true
	}
	s.observe(OutcomeDropped)
	return "", false
}

func (s *CleaningService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveMentionOutcome(outcome)
	}
}
