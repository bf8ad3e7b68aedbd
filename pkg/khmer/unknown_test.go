package khmer

import "testing"

func TestMergeUnknownCoalescesAdjacentUnknownRuns(t *testing.T) {
	text := "abc"
	segs := []Segment{{0, 1}, {1, 2}, {2, 3}}
	dict := mustDict(t, map[string]float32{}, 9.0, 9.0, 4)
	got := mergeUnknown(text, dict, DefaultConfig(), segs)
	if len(got) != 1 || got[0] != (Segment{Start: 0, End: 3}) {
		t.Errorf("mergeUnknown(%q, %v) = %v, want single [0,3) run", text, segs, got)
	}
}

func TestMergeUnknownLeavesKnownSegmentsSeparate(t *testing.T) {
	text := "5x7"
	segs := []Segment{{0, 1}, {1, 2}, {2, 3}}
	dict := mustDict(t, map[string]float32{}, 9.0, 9.0, 4)
	got := mergeUnknown(text, dict, DefaultConfig(), segs)
	if len(got) != 3 {
		t.Errorf("digits should be known and not merged with the unknown middle, got %v", got)
	}
}

func TestMergeUnknownDisabledIsNoop(t *testing.T) {
	text := "abc"
	segs := []Segment{{0, 1}, {1, 2}, {2, 3}}
	dict := mustDict(t, map[string]float32{}, 9.0, 9.0, 4)
	cfg := DefaultConfig()
	cfg.EnableUnknownMerging = false
	got := mergeUnknown(text, dict, cfg, segs)
	if len(got) != 3 {
		t.Errorf("with EnableUnknownMerging off, segments must pass through unchanged, got %v", got)
	}
}

func TestMergeUnknownIdempotent(t *testing.T) {
	text := "abc def"
	segs := []Segment{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}}
	dict := mustDict(t, map[string]float32{}, 9.0, 9.0, 4)
	cfg := DefaultConfig()
	once := mergeUnknown(text, dict, cfg, segs)
	twice := mergeUnknown(text, dict, cfg, once)
	if len(once) != len(twice) {
		t.Fatalf("mergeUnknown not idempotent: once=%v twice=%v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("segment %d differs between passes: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestIsKnownSegmentRecognizesDictionaryWord(t *testing.T) {
	word := string(rKA) + string(rRO)
	dict := mustDict(t, map[string]float32{word: 1.0}, 9.0, 9.0, 4)
	if !isKnownSegment(word, dict, DefaultConfig()) {
		t.Errorf("%q should be recognized via dictionary lookup", word)
	}
}

func TestIsKnownSegmentEmptyIsUnknown(t *testing.T) {
	dict := mustDict(t, map[string]float32{}, 9.0, 9.0, 4)
	if isKnownSegment("", dict, DefaultConfig()) {
		t.Error("an empty segment should never be known")
	}
}
