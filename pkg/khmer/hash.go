package khmer

// djb2Seed is the standard djb2 initial value.
const djb2Seed uint32 = 5381

// djb2 computes the djb2 hash of b: h0 = 5381; h = h*33 + b for each byte,
// with 32-bit wraparound.
func djb2(b []byte) uint32 {
	h := djb2Seed
	for _, c := range b {
		h = h<<5 + h + uint32(c)
	}
	return h
}

// djb2Acc is an incremental djb2 accumulator. Every intermediate value is
// itself the valid hash of the bytes fed so far, so the dictionary walk in
// the DP decoder can probe once per codepoint instead of rehashing the
// whole prefix each time.
type djb2Acc uint32

func newDjb2Acc() djb2Acc {
	return djb2Acc(djb2Seed)
}

func (h djb2Acc) appendBytes(b []byte) djb2Acc {
	for _, c := range b {
		h = h<<5 + h + djb2Acc(c)
	}
	return h
}

func (h djb2Acc) value() uint32 {
	return uint32(h)
}
