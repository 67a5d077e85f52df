package explanation

import "strings"

// BannedPhrases may never appear in any explanation text. Matching is
// case-insensitive on substrings, so "diagnos" also covers "diagnosis".
var BannedPhrases = []string{"should", "recommend", "diagnos", "treat", "prescribe"}

// FindBanned returns the banned phrases found in text, or nil
func FindBanned(text string) []string {
	normalized := strings.ToLower(text)

	var found []string
	for _, phrase := range BannedPhrases {
		if strings.Contains(normalized, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

// IsSafe reports whether text contains no banned phrase
func IsSafe(text string) bool {
	return len(FindBanned(text)) == 0
}
