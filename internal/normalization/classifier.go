package normalization

import (
	"regexp"
	"strings"
)

// medicalHints are substrings that mark a short free-text token as plausibly
// medical even when it matches no canonical term. Kept deliberately small;
// extending it changes which unmatched mentions surface as
// "Medical (Unmapped)".
var medicalHints = []string{
	"pain", "ache", "rash", "swelling", "itch", "vomit", "nausea", "dizz",
	"breath", "palp", "fever", "head", "chest", "abdominal", "skin", "throat",
}

var (
	digitsOnlyRe      = regexp.MustCompile(`^\d+$`)
	reactionGarbageRe = regexp.MustCompile(`^(n/?a|none|nil|unknown)$`)
	medicineGarbageRe = regexp.MustCompile(`^(n/?a|none|unknown|nil|water|burger)$`)
	hasLetterRe       = regexp.MustCompile(`[a-zA-Z]`)
)

// IsGarbage reports whether a reaction mention carries no usable signal:
// blank, pure digits, a placeholder word, or a lone token with no medical
// hint in it.
func IsGarbage(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}
	if digitsOnlyRe.MatchString(t) {
		return true
	}
	if reactionGarbageRe.MatchString(t) {
		return true
	}
	if len(strings.Fields(t)) == 1 && !IsMedicalLike(t) {
		return true
	}
	return false
}

// IsMedicalLike reports whether the text contains any known medical hint
// substring. Case-insensitive.
func IsMedicalLike(text string) bool {
	t := strings.ToLower(text)
	for _, hint := range medicalHints {
		if strings.Contains(t, hint) {
			return true
		}
	}
	return false
}

// isMedicineGarbage is the stricter medicine-side detector. Medicine names
// are proper nouns, so short strings and letterless strings are rejected
// outright; the reaction-side hint logic does not apply here.
func isMedicineGarbage(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}
	if medicineGarbageRe.MatchString(t) {
		return true
	}
	if len(t) < 4 {
		return true
	}
	if !hasLetterRe.MatchString(t) {
		return true
	}
	return false
}
