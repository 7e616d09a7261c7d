// Package normalization implements the text-matching core: fuzzy scoring,
// garbage classification, and the medicine and reaction normalizers.
//
// Nothing in this package returns an error for "no match". Absence is the
// failure signal; errors are reserved for infrastructure boundaries.
package normalization

import (
	"sort"
	"strings"
	"unicode"
)

// Match is one fuzzy-match result: the winning candidate and its score on a
// 0..100 scale.
type Match struct {
	Candidate string
	Score     int
}

// BestMatch scores term against every candidate and returns the highest
// scorer. Ties keep the earliest candidate, so callers that pass a sorted
// candidate list get deterministic results. The boolean is false only when
// candidates is empty or the term normalizes to nothing.
func BestMatch(term string, candidates []string) (Match, bool) {
	norm := normalizeForMatch(term)
	if norm == "" || len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{Score: -1}
	for _, cand := range candidates {
		score := Score(norm, normalizeForMatch(cand))
		if score > best.Score {
			best = Match{Candidate: cand, Score: score}
		}
	}
	return best, true
}

// Score combines three classic fuzzy ratios and keeps the best one:
// plain Levenshtein ratio, partial ratio (best window of the longer string),
// and token-set ratio (order- and duplication-insensitive). Inputs are
// expected to be pre-normalized; the result is clamped to 0..100.
func Score(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	score := levenshteinRatio(a, b)
	if p := partialRatio(a, b); p > score {
		score = p
	}
	if t := tokenSetRatio(a, b); t > score {
		score = t
	}
	return score
}

// normalizeForMatch lowercases, trims, and collapses internal whitespace.
func normalizeForMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// levenshteinRatio is 100 * (1 - distance/maxLen), rounded.
func levenshteinRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 100
	}
	d := levenshtein(ra, rb)
	return int(float64(maxLen-d)/float64(maxLen)*100 + 0.5)
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// partialRatio slides the shorter string over the longer one and keeps the
// best window ratio. Catches "paracetamol" inside "paracetamol biogesic".
func partialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}
	if len(shorter) == len(longer) {
		return levenshteinRatio(string(shorter), string(longer))
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := longer[i : i+len(shorter)]
		r := levenshteinRatio(string(shorter), string(window))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSetRatio compares the shared-token core of both strings against each
// full token set, keeping the best pairwise ratio.
func tokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	core := strings.Join(shared, " ")
	full1 := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	best := levenshteinRatio(full1, full2)
	if core != "" {
		if r := levenshteinRatio(core, full1); r > best {
			best = r
		}
		if r := levenshteinRatio(core, full2); r > best {
			best = r
		}
	}
	return best
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		set[tok] = struct{}{}
	}
	return set
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
