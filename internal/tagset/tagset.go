// Package tagset normalizes event tag values.
package tagset

import (
	"sort"
	"strings"
)

// Normalize trims, lowercases and deduplicates tags, dropping empties.
// The result is sorted so tag sets compare and persist deterministically.
func Normalize(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}
