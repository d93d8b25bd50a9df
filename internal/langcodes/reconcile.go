package langcodes

// CodeMap maps each fine-grained corpus tag to the detector code it was
// reconciled to. Tags that could not be reconciled are absent.
type CodeMap map[string]string

// CodeSet builds a membership set from a detector's supported code list.
func CodeSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

// BuildCodeMap reconciles the observed fine-grained tags against a
// detector's supported code set.
//
// Overrides take precedence: when an override's target is unsupported the
// tag is dropped outright, never re-checked against the resolver. Tags
// without an override go through the resolver and are kept only when the
// resolved code is supported. Every failure mode is a silent exclusion.
func BuildCodeMap(tags []string, supported map[string]bool, r Resolver, overrides map[string]string) CodeMap {
	m := make(CodeMap)
	for _, tag := range tags {
		if code, ok := overrides[tag]; ok {
			if supported[code] {
				m[tag] = code
			}
			continue
		}
		code, ok := r.Resolve(tag)
		if ok && supported[code] {
			m[tag] = code
		}
	}
	return m
}
