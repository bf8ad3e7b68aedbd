package khmer

import (
	"math"
	"unicode/utf8"
)

// Segment is a half-open byte range [Start, End) within normalized text.
type Segment struct {
	Start, End int
}

// dpCell is one position's state in the Viterbi table: Cost is +Inf for an
// unreachable position, Prev is -1 for "no predecessor".
type dpCell struct {
	cost float32
	prev int64
}

const repairPenalty = 50.0
const invalidSingleUnknownPenalty = 10.0

// decode computes the minimum-cost segmentation of text by dynamic
// programming over byte positions 0..len(text). It
// returns the ordered segment list and true, or (nil, false) if position
// len(text) is unreachable (which should not happen: the unknown-fallback
// transition always advances at least one codepoint).
func decode(text string, dict *Dictionary, cfg Config) ([]Segment, bool) {
	n := len(text)
	dp := make([]dpCell, n+1)
	inf := float32(math.Inf(1))
	for i := range dp {
		dp[i] = dpCell{cost: inf, prev: -1}
	}
	dp[0] = dpCell{cost: 0, prev: -1}

	propose := func(from, target int, cost float32) {
		if target > n {
			return
		}
		if cost < dp[target].cost {
			dp[target] = dpCell{cost: cost, prev: int64(from)}
		}
	}

	maxWordLen := int(dict.MaxWordLength)

	for i := 0; i < n; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if dp[i].cost == inf {
			i += size
			continue
		}
		cur := dp[i].cost

		if cfg.EnableRepairMode && r >= dependentVowelStart && r <= dependentVowelEnd {
			propose(i, i+size, cur+dict.UnknownCost+repairPenalty)
			i += size
			continue
		}

		if IsDigit(r) {
			numLen := NumberLength(text[i:])
			propose(i, i+numLen, cur+1.0)
		} else if IsSeparator(r) {
			propose(i, i+size, cur+0.1)
		}

		if cfg.EnableAcronymDetection && IsAcronymStart(text[i:]) {
			acrLen := AcronymLength(text[i:])
			propose(i, i+acrLen, cur+dict.DefaultCost)
		}

		acc := newDjb2Acc()
		cum := 0
		for _, c := range text[i:] {
			clen := utf8.RuneLen(c)
			if clen < 0 {
				clen = 1
			}
			if cum+clen > maxWordLen {
				break
			}
			acc = acc.appendBytes([]byte(text[i+cum : i+cum+clen]))
			cum += clen
			if cost, ok := dict.lookupHash(acc.value(), []byte(text[i:i+cum])); ok {
				propose(i, i+cum, cur+cost)
			}
		}

		var clusterBytes int
		if IsKhmerChar(r) {
			clusterBytes = KhmerClusterLength(text[i:])
		} else {
			clusterBytes = size
		}
		unkCost := dict.UnknownCost
		if clusterBytes == size && IsKhmerChar(r) && !IsValidSingleBase(r) {
			unkCost += invalidSingleUnknownPenalty
		}
		propose(i, i+clusterBytes, cur+unkCost)

		i += size
	}

	if dp[n].prev == -1 {
		return nil, false
	}

	segments := make([]Segment, 0, n/2+1)
	cur := n
	for cur > 0 {
		prev := int(dp[cur].prev)
		segments = append(segments, Segment{Start: prev, End: cur})
		cur = prev
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments, true
}
