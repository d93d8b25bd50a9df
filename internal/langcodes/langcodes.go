// Package langcodes reconciles the corpus's fine-grained ISO 639-3 style
// language tags with a detector's coarser code space.
package langcodes

import "strings"

// Normalize collapses a regional variant to its base code: "pt_BR" and
// "pt-BR" both become "pt". Codes with no separator are returned unchanged.
// For codes with more than two segments, only the first segment is kept.
func Normalize(code string) string {
	if i := strings.IndexAny(code, "_-"); i >= 0 {
		return code[:i]
	}
	return code
}

// DefaultOverrides returns the curated fine-grained → coarse mapping used
// before consulting the automatic resolver. Targets that a given detector
// does not support are dropped during reconciliation, so entries may name
// codes only some detectors carry.
func DefaultOverrides() map[string]string {
	return map[string]string{
		// Arabic varieties
		"arb": "ar", // Standard Arabic
		"arz": "ar", // Egyptian Arabic
		"ary": "ar", // Moroccan Arabic
		"ars": "ar", // Najdi Arabic
		"apd": "ar", // Sudanese Arabic
		"aeb": "ar", // Tunisian Arabic
		// Individual language vs macrolanguage
		"swh": "sw", // Swahili (individual)
		"azj": "az", // North Azerbaijani
		"lvs": "lv", // Standard Latvian
		"uzs": "uz", // Southern Uzbek
		"zsm": "ms", // Standard Malay
		// Close mappings
		"fil": "tl", // Filipino → Tagalog
		"hbo": "he", // Ancient Hebrew → Hebrew
		"gaz": "om", // West Central Oromo → Oromo
		// Direct three-letter match
		"nso": "nso", // Pedi
	}
}

// MergeOverrides layers extra entries over base without mutating either map.
// Extra entries win on conflict; an empty-string target removes the entry.
func MergeOverrides(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for tag, code := range base {
		merged[tag] = code
	}
	for tag, code := range extra {
		if code == "" {
			delete(merged, tag)
			continue
		}
		merged[tag] = code
	}
	return merged
}
