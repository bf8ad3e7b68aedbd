package khmer

// mergeUnknown coalesces runs of segments classified as "unknown" into a
// single segment spanning the first unknown's start to the last unknown's
// end. Each segment is re-validated against the same
// "known" predicates the DP decoder itself uses to recognize separators,
// digits, valid single bases, numbers, acronyms, and dictionary words.
func mergeUnknown(text string, dict *Dictionary, cfg Config, segments []Segment) []Segment {
	if !cfg.EnableUnknownMerging {
		return segments
	}

	result := make([]Segment, 0, len(segments))
	unknownStart := -1
	unknownEnd := 0

	flush := func() {
		if unknownStart != -1 {
			result = append(result, Segment{Start: unknownStart, End: unknownEnd})
			unknownStart = -1
		}
	}

	for _, seg := range segments {
		s := text[seg.Start:seg.End]
		if isKnownSegment(s, dict, cfg) {
			flush()
			result = append(result, seg)
		} else {
			if unknownStart == -1 {
				unknownStart = seg.Start
			}
			unknownEnd = seg.End
		}
	}
	flush()
	return result
}

func isKnownSegment(s string, dict *Dictionary, cfg Config) bool {
	if s == "" {
		return false
	}

	first := firstRune(s)
	runeCount := 0
	for range s {
		runeCount++
		if runeCount > 1 {
			break
		}
	}
	if runeCount == 1 {
		if IsSeparator(first) || IsDigit(first) || IsValidSingleBase(first) {
			return true
		}
	}

	if NumberLength(s) == len(s) {
		return true
	}

	if cfg.EnableAcronymDetection && IsAcronymStart(s) && AcronymLength(s) == len(s) {
		return true
	}

	if _, ok := dict.Lookup([]byte(s)); ok {
		return true
	}

	return false
}
