package khmer

import (
	"sort"
	"strings"
)

// Vowel-ligature fusion pairs for normalization pass A.
const (
	vowelE    = 0x17C1
	vowelIgh  = 0x17B8
	vowelAa   = 0x17B6
	vowelOe   = 0x17BE
	vowelAu   = 0x17C4

	zwsp = 0x200B
	zwnj = 0x200C
	zwj  = 0x200D
)

// clusterPartType classifies a code point for normalization pass B.
type clusterPartType int

const (
	ptOther clusterPartType = iota
	ptBase
	ptCoeng
	ptRegister
	ptVowel
	ptSign
)

func clusterPartTypeOf(r rune) clusterPartType {
	switch {
	case IsValidSingleBase(r):
		return ptBase
	case IsCoeng(r):
		return ptCoeng
	case IsRegisterShifter(r):
		return ptRegister
	case IsDependentVowel(r):
		return ptVowel
	case IsSign(r):
		return ptSign
	default:
		return ptOther
	}
}

// clusterPart is one constituent of a Khmer orthographic cluster being
// reassembled by the normalizer; c2 is populated only for a coeng part
// whose subscript consonant was consumed alongside it.
type clusterPart struct {
	c1, c2 rune
	hasC2  bool
	typ    clusterPartType
	index  int
}

func clusterPartPriority(p clusterPart) int {
	switch p.typ {
	case ptCoeng:
		if p.hasC2 && p.c2 == rRO {
			return 20
		}
		if p.hasC2 {
			return 10
		}
		return 15 // stray coeng, no subscript consumed
	case ptRegister:
		return 30
	case ptVowel:
		return 40
	case ptSign:
		return 50
	default:
		return 100
	}
}

// Normalize canonicalizes raw Khmer text: pass A drops zero-width
// joiners/non-joiners and the ZWSP, and fuses two-codepoint vowel
// ligatures; pass B reorders diacritics within each orthographic cluster
// by a fixed priority so that visually-equivalent inputs compare equal.
func Normalize(text string) string {
	var stripped strings.Builder
	stripped.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == zwsp || c == zwnj || c == zwj {
			continue
		}
		if c == vowelE && i+1 < len(runes) {
			switch runes[i+1] {
			case vowelIgh:
				stripped.WriteRune(vowelOe)
				i++
				continue
			case vowelAa:
				stripped.WriteRune(vowelAu)
				i++
				continue
			}
		}
		stripped.WriteRune(c)
	}

	var out strings.Builder
	out.Grow(stripped.Len())

	var cluster []clusterPart
	clsCount := 0

	flush := func() {
		if len(cluster) == 0 {
			return
		}
		pinned := cluster[0]
		rest := cluster[1:]
		sort.SliceStable(rest, func(i, j int) bool {
			pi, pj := clusterPartPriority(rest[i]), clusterPartPriority(rest[j])
			if pi != pj {
				return pi < pj
			}
			return rest[i].index < rest[j].index
		})
		writePart(&out, pinned)
		for _, p := range rest {
			writePart(&out, p)
		}
		cluster = cluster[:0]
	}

	temp := []rune(stripped.String())
	for i := 0; i < len(temp); i++ {
		c := temp[i]
		typ := clusterPartTypeOf(c)

		switch {
		case typ == ptBase:
			flush()
			cluster = append(cluster, clusterPart{c1: c, typ: typ, index: clsCount})
			clsCount++

		case typ == ptCoeng:
			part := clusterPart{c1: c, typ: typ, index: clsCount}
			if i+1 < len(temp) && clusterPartTypeOf(temp[i+1]) == ptBase {
				part.c2 = temp[i+1]
				part.hasC2 = true
				i++
			}
			cluster = append(cluster, part)
			clsCount++

		case typ == ptRegister || typ == ptVowel || typ == ptSign:
			if len(cluster) != 0 {
				cluster = append(cluster, clusterPart{c1: c, typ: typ, index: clsCount})
				clsCount++
			} else {
				out.WriteRune(c)
			}

		default: // OTHER
			flush()
			out.WriteRune(c)
			clsCount = 0
		}
	}
	flush()

	return out.String()
}

func writePart(out *strings.Builder, p clusterPart) {
	out.WriteRune(p.c1)
	if p.hasC2 {
		out.WriteRune(p.c2)
	}
}
