package normalization

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gamotph/adr-intelligence/internal/domain/vocabulary"
)

// defaultMedicineThreshold is used when a caller passes a non-positive
// threshold.
const defaultMedicineThreshold = 85

// medicineSplitRe separates compound medicine fields: delimiters plus the
// standalone word "and". "+" is a medicine-only delimiter (combination
// products like "Amoxicillin + Clavulanate").
var medicineSplitRe = regexp.MustCompile(`(?i)[;,/+]|\band\b`)

// MedicineNormalizer maps free-text medicine names onto canonical generic
// names using the brand mapping and the generic vocabulary.
type MedicineNormalizer struct {
	vocab *vocabulary.Store
}

// NewMedicineNormalizer constructs a normalizer over the given vocabulary.
func NewMedicineNormalizer(vocab *vocabulary.Store) *MedicineNormalizer {
	return &MedicineNormalizer{vocab: vocab}
}

// NormalizeSingle resolves one medicine name to its canonical generic.
//
// Resolution order: garbage reject, then brand resolution (fuzzy over the
// brand keys, mapped generic wins), then direct fuzzy match against the
// generic list. The boolean is false when nothing clears the threshold.
func (m *MedicineNormalizer) NormalizeSingle(name string, threshold int) (string, bool) {
	if threshold <= 0 {
		threshold = defaultMedicineThreshold
	}
	cleaned := strings.Join(strings.Fields(name), " ")
	if isMedicineGarbage(cleaned) {
		return "", false
	}
	lower := strings.ToLower(cleaned)

	if match, ok := BestMatch(lower, m.vocab.BrandKeys()); ok && match.Score >= threshold {
		generic := m.vocab.BrandMapping()[match.Candidate]
		return m.canonicalGeneric(generic), true
	}

	if match, ok := BestMatch(lower, m.vocab.Generics()); ok && match.Score >= threshold {
		return match.Candidate, true
	}

	return "", false
}

// canonicalGeneric swaps a mapped generic for its vocabulary casing when the
// generic list knows it; otherwise the mapping's own text stands.
func (m *MedicineNormalizer) canonicalGeneric(generic string) string {
	lower := strings.ToLower(generic)
	for _, cand := range m.vocab.Generics() {
		if strings.ToLower(cand) == lower {
			return cand
		}
	}
	return generic
}

// NormalizeList splits a compound medicine field, normalizes each part, and
// returns the deduplicated canonical names in ascending order.
func (m *MedicineNormalizer) NormalizeList(raw string, threshold int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range medicineSplitRe.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		canonical, ok := m.NormalizeSingle(part, threshold)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}

// NormalizeBrandAndGeneric normalizes both columns of a medicine record and
// returns the sorted union. The first element, when any, is the record's
// deterministic canonical pick.
func (m *MedicineNormalizer) NormalizeBrandAndGeneric(brand, generic string, threshold int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range append(m.NormalizeList(brand, threshold), m.NormalizeList(generic, threshold)...) {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
