package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVariantsSwapsCoengTaAndDa(t *testing.T) {
	word := "x" + coengTa + "y"
	variants := generateVariants(word)
	assert.Contains(t, variants, "x"+coengDa+"y")
}

func TestGenerateVariantsNeverIncludesTheWordItself(t *testing.T) {
	word := "x" + coengTa + "y"
	variants := generateVariants(word)
	assert.NotContains(t, variants, word)
}

func TestGenerateVariantsWithNoCoengConfusionIsEmpty(t *testing.T) {
	// a plain word with no coeng-ta/da confusion and no coeng-ro stacking
	// has no alternate spellings worth recording.
	variants := generateVariants("hello")
	assert.Empty(t, variants)
}

func TestSwapCoengRoOrderRewritesStackedPair(t *testing.T) {
	in := string([]rune{0x17D2, 0x179A, 0x17D2, 0x1781})
	want := string([]rune{0x17D2, 0x1781, 0x17D2, 0x179A})
	got := swapCoengRoOrder(in)
	assert.Equal(t, want, got)
}

func TestSwapCoengRoOrderLeavesNonMatchingWordUnchanged(t *testing.T) {
	in := "hello"
	assert.Equal(t, in, swapCoengRoOrder(in))
}

func TestSwapCoengRoOrderLeavesLoneCoengRoUnchanged(t *testing.T) {
	// Coeng+Ro not immediately followed by a second Coeng pair: nothing
	// to swap.
	in := string([]rune{0x17D2, 0x179A})
	assert.Equal(t, in, swapCoengRoOrder(in))
}

func TestTrimSpaceStripsLeadingAndTrailingWhitespace(t *testing.T) {
	assert.Equal(t, "word", trimSpace("  word\t\r\n"))
	assert.Equal(t, "", trimSpace("   "))
	assert.Equal(t, "a b", trimSpace(" a b "))
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		assert.Equal(t, want, nextPow2(in), "nextPow2(%d)", in)
	}
}

func TestCompileProducesLookupableKDIC(t *testing.T) {
	costs := map[string]float32{
		"a": 1.0,
		"b": 2.0,
		"c": 3.0,
	}
	data := compile(costs, 9.0, 12.0, 0.5)

	require.GreaterOrEqual(t, len(data), kdicHeaderSize)
	assert.Equal(t, kdicMagic[:], data[0:4])

	// The table must agree with the djb2/linear-probe scheme pkg/khmer
	// uses at lookup time: every word's slot is reachable by probing
	// forward from djb2(word)&mask until an exact byte match or an empty
	// slot.
	tableSize := le32(data[12:16])
	mask := tableSize - 1
	poolOff := kdicHeaderSize + int(tableSize)*kdicEntrySize
	for w, wantCost := range costs {
		idx := djb2([]byte(w)) & mask
		found := false
		for {
			off := kdicHeaderSize + int(idx)*kdicEntrySize
			nameOffset := le32(data[off : off+4])
			if nameOffset == 0 {
				break
			}
			start := poolOff + int(nameOffset)
			end := start
			for data[end] != 0 {
				end++
			}
			if string(data[start:end]) == w {
				gotCost := math32(data[off+4 : off+8])
				assert.Equal(t, wantCost, gotCost, "cost for %q", w)
				found = true
				break
			}
			idx = (idx + 1) & mask
		}
		assert.True(t, found, "word %q not reachable by probing", w)
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func math32(b []byte) float32 {
	bits := le32(b)
	return math.Float32frombits(bits)
}
