package analysis

import "strings"

// DuplicateThreshold is the similarity above which two descriptions are the same criterion.
const DuplicateThreshold = 0.7

// Dedup returns a new list without near-duplicate criteria. The first
// occurrence wins and order is preserved.
func Dedup(items []Criterion) []Criterion {
	seen := make([]string, 0, len(items))
	unique := make([]Criterion, 0, len(items))

	for _, item := range items {
		desc := strings.ToLower(item.Description)

		duplicate := false
		for _, s := range seen {
			if Similarity(desc, s) > DuplicateThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		seen = append(seen, desc)
		unique = append(unique, item)
	}

	return unique
}

// Similarity is the word overlap of a and b divided by the larger word set.
// Words are compared case-insensitively. Two empty texts are identical.
func Similarity(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)

	denominator := max(len(wa), len(wb))
	if denominator == 0 {
		return 1
	}

	common := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			common++
		}
	}

	return float64(common) / float64(denominator)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
