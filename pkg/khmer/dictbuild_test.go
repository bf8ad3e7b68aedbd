package khmer

import (
	"encoding/binary"
	"math"
)

// buildKDictBytes serializes a minimal KDIC file for the
// given words/costs, shared by the dictionary, DP, rule-engine, and
// segmenter tests in this package. tableSize must be a power of two large
// enough to hold len(words) without wraparound collisions looping
// forever; callers that want to exercise a deliberate hash collision pass
// a tight tableSize.
func buildKDictBytes(words map[string]float32, defaultCost, unknownCost float32, tableSize uint32) []byte {
	maxWordLen := 0
	for w := range words {
		if len(w) > maxWordLen {
			maxWordLen = len(w)
		}
	}

	mask := tableSize - 1
	type slot struct {
		nameOffset uint32
		cost       float32
	}
	table := make([]slot, tableSize)

	pool := []byte{0} // offset 0 reserved as the empty sentinel
	for w, cost := range words {
		idx := djb2([]byte(w)) & mask
		for table[idx].nameOffset != 0 {
			idx = (idx + 1) & mask
		}
		table[idx] = slot{nameOffset: uint32(len(pool)), cost: cost}
		pool = append(pool, []byte(w)...)
		pool = append(pool, 0)
	}

	buf := make([]byte, kdicHeaderSize)
	copy(buf[0:4], kdicMagic[:])
	binary.LittleEndian.PutUint32(buf[4:8], 1) // version
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(words)))
	binary.LittleEndian.PutUint32(buf[12:16], tableSize)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(defaultCost))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(unknownCost))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(maxWordLen))
	binary.LittleEndian.PutUint32(buf[28:32], 0) // padding

	for _, s := range table {
		var entry [kdicEntrySize]byte
		binary.LittleEndian.PutUint32(entry[0:4], s.nameOffset)
		binary.LittleEndian.PutUint32(entry[4:8], math.Float32bits(s.cost))
		buf = append(buf, entry[:]...)
	}
	buf = append(buf, pool...)
	return buf
}
