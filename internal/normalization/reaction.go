package normalization

import (
	"regexp"
	"strings"

	"github.com/gamotph/adr-intelligence/internal/domain/vocabulary"
)

// Reaction-side default thresholds. Single-mention matching is looser than
// list splitting: short fragments out of a split field need a higher bar to
// avoid false canonical hits.
const (
	defaultReactionThreshold     = 70
	defaultReactionListThreshold = 85
)

// reactionSplitRe separates compound reaction fields. Unlike medicines, "+"
// is not a delimiter here and "and" only splits when spaced out.
var reactionSplitRe = regexp.MustCompile(`(?i)[;,/]| and `)

// ReactionNormalizer maps free-text reaction mentions onto the canonical
// ADR term list.
type ReactionNormalizer struct {
	vocab *vocabulary.Store
}

// NewReactionNormalizer constructs a normalizer over the given vocabulary.
func NewReactionNormalizer(vocab *vocabulary.Store) *ReactionNormalizer {
	return &ReactionNormalizer{vocab: vocab}
}

// NormalizeADR resolves one reaction mention to its canonical ADR term.
// The boolean is false when the mention is blank, the vocabulary is
// unavailable, or no term clears the threshold.
func (r *ReactionNormalizer) NormalizeADR(raw string, threshold int) (string, bool) {
	if threshold <= 0 {
		threshold = defaultReactionThreshold
	}
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" {
		return "", false
	}

	terms, err := r.vocab.Reactions()
	if err != nil {
		return "", false
	}
	match, ok := BestMatch(cleaned, terms)
	if !ok || match.Score < threshold {
		return "", false
	}
	return match.Candidate, true
}

// NormalizeADRList splits a compound reaction field and normalizes each
// part, returning canonical terms deduplicated in first-seen order.
func (r *ReactionNormalizer) NormalizeADRList(raw string, threshold int) []string {
	if threshold <= 0 {
		threshold = defaultReactionListThreshold
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range reactionSplitRe.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		canonical, ok := r.NormalizeADR(part, threshold)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}
