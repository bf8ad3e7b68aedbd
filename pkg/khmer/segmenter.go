package khmer

import "strings"

// DefaultSeparator is the zero-width space (U+200B) inserted between
// discovered word boundaries when the caller does not supply one.
const DefaultSeparator = "​"

// Config controls which passes of the segmentation pipeline run. Every
// flag defaults to true.
type Config struct {
	EnableNormalization    bool
	EnableRepairMode       bool
	EnableAcronymDetection bool
	EnableUnknownMerging   bool

	// EnableFrequencyCosts is reserved for API compatibility with the
	// source implementation's probabilistic-cost mode; it has no effect
	// against the binary KDIC dictionary, which carries pre-baked costs.
	EnableFrequencyCosts bool
}

// DefaultConfig returns a Config with every flag enabled.
func DefaultConfig() Config {
	return Config{
		EnableNormalization:    true,
		EnableRepairMode:       true,
		EnableAcronymDetection: true,
		EnableUnknownMerging:   true,
		EnableFrequencyCosts:   true,
	}
}

// Segmenter segments Khmer text using a Viterbi-style DP decoder driven
// by a loaded Dictionary. A Segmenter is immutable after construction: it
// holds no per-call mutable state, so a single value may be shared and
// called concurrently from any number of goroutines (the dictionary is
// read-only, and the DP table/segment list/result buffer are allocated
// fresh inside each Segment call).
type Segmenter struct {
	dict *Dictionary
	cfg  Config
}

// NewSegmenter builds a Segmenter over dict (which may be nil, in which
// case Segment degrades to returning its (optionally normalized) input
// unchanged) and cfg.
func NewSegmenter(dict *Dictionary, cfg Config) *Segmenter {
	return &Segmenter{dict: dict, cfg: cfg}
}

// Segment splits text into words, joining them with separator (or
// DefaultSeparator if separator is empty).
func (s *Segmenter) Segment(text string, separator string) string {
	if separator == "" {
		separator = DefaultSeparator
	}

	normalized := text
	if s.cfg.EnableNormalization {
		normalized = Normalize(text)
	}
	if len(normalized) == 0 {
		return ""
	}
	if s.dict == nil {
		return normalized
	}

	segments, ok := decode(normalized, s.dict, s.cfg)
	if !ok {
		return normalized
	}

	segments = applyRules(normalized, segments)
	segments = mergeUnknown(normalized, s.dict, s.cfg, segments)

	return join(normalized, segments, separator)
}

// join concatenates the final segments, inserting sep between adjacent
// segments only (not before the first, not after the last).
func join(text string, segments []Segment, sep string) string {
	if len(segments) == 0 {
		return ""
	}

	total := (len(segments) - 1) * len(sep)
	for _, seg := range segments {
		total += seg.End - seg.Start
	}

	var b strings.Builder
	b.Grow(total)
	for i, seg := range segments {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(text[seg.Start:seg.End])
	}
	return b.String()
}
