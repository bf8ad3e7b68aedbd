// Package khmer implements the segmentation core: a Viterbi-style decoder
// over a memory-mapped dictionary, a Khmer cluster-aware normalizer, and a
// deterministic orthographic rule engine.
package khmer

import "unicode/utf8"

// Khmer Unicode block: U+1780-U+17FF (main), U+19E0-U+19FF (symbols).
const (
	khmerBlockStart = 0x1780
	khmerBlockEnd   = 0x17FF
	khmerSymStart   = 0x19E0
	khmerSymEnd     = 0x19FF

	consonantStart = 0x1780
	consonantEnd   = 0x17A2
	indepVowelStart = 0x17A3
	indepVowelEnd   = 0x17B3

	dependentVowelStart = 0x17B6
	dependentVowelEnd   = 0x17C5

	registerStart = 0x17C9
	registerEnd   = 0x17CA

	signLoStart = 0x17C6
	signLoEnd   = 0x17D1
	signStray1  = 0x17D3
	signStray2  = 0x17DD

	coeng = 0x17D2

	punctStart = 0x17D4
	punctEnd   = 0x17DA
	riel       = 0x17DB

	khmerDigitStart = 0x17E0
	khmerDigitEnd   = 0x17E9
)

// Diacritics referenced by the rule engine.
const (
	rKA           = 0x1780 // consonant KA
	rDA           = 0x178A // consonant DA
	rQA           = 0x17A2 // consonant QA
	rRO           = 0x179A // consonant RO (subscript form of interest)
	rAhsda        = 0x17CF
	rBantoc       = 0x17CB
	rRobat        = 0x17CC
	rToandakhiat  = 0x17CE
	rSamyokSannya = 0x17D0
)

// IsKhmerChar reports whether r falls in either Khmer Unicode block.
func IsKhmerChar(r rune) bool {
	return (r >= khmerBlockStart && r <= khmerBlockEnd) || (r >= khmerSymStart && r <= khmerSymEnd)
}

// IsConsonant reports whether r is a Khmer consonant, U+1780..U+17A2.
func IsConsonant(r rune) bool {
	return r >= consonantStart && r <= consonantEnd
}

// IsIndependentVowel reports whether r is a Khmer independent vowel,
// U+17A3..U+17B3.
func IsIndependentVowel(r rune) bool {
	return r >= indepVowelStart && r <= indepVowelEnd
}

// IsValidSingleBase reports whether r alone can start (and stand as) a
// Khmer orthographic cluster: a consonant or an independent vowel.
func IsValidSingleBase(r rune) bool {
	return IsConsonant(r) || IsIndependentVowel(r)
}

// IsCoeng reports whether r is the subscript marker U+17D2.
func IsCoeng(r rune) bool {
	return r == coeng
}

// IsDependentVowel reports whether r is a dependent vowel, U+17B6..U+17C5.
func IsDependentVowel(r rune) bool {
	return r >= dependentVowelStart && r <= dependentVowelEnd
}

// IsRegisterShifter reports whether r is a register shifter, U+17C9..U+17CA.
func IsRegisterShifter(r rune) bool {
	return r >= registerStart && r <= registerEnd
}

// IsSign reports whether r is a sign/diacritic attached to a cluster:
// U+17C6..U+17D1, U+17D3, or U+17DD.
func IsSign(r rune) bool {
	return (r >= signLoStart && r <= signLoEnd) || r == signStray1 || r == signStray2
}

// IsDigit reports whether r is an ASCII or Khmer digit.
func IsDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= khmerDigitStart && r <= khmerDigitEnd)
}

// IsSeparator reports whether r by itself is a token boundary: Khmer
// punctuation/currency, ASCII punctuation/whitespace, or a fixed set of
// Latin-1 and general-punctuation code points.
func IsSeparator(r rune) bool {
	switch {
	case r >= punctStart && r <= punctEnd:
		return true
	case r == riel:
		return true
	case r < 0x80 && isASCIIPunctOrSpace(byte(r)):
		return true
	case r == 0x00A0, r == 0x02DD, r == 0x00AB, r == 0x00BB:
		return true
	case r >= 0x2000 && r <= 0x206F:
		return true
	case r >= 0x20A0 && r <= 0x20CF:
		return true
	case r == 0x00A3, r == 0x00A5:
		return true
	}
	return false
}

func isASCIIPunctOrSpace(b byte) bool {
	switch {
	case b == ' ', b == '\t', b == '\n', b == '\v', b == '\f', b == '\r':
		return true
	case b >= '!' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b >= '[' && b <= '`':
		return true
	case b >= '{' && b <= '~':
		return true
	}
	return false
}

// KhmerClusterLength returns the byte length of the Khmer orthographic
// cluster at the start of s. If s does not begin with a consonant or
// independent vowel, it returns the byte length of the first codepoint.
func KhmerClusterLength(s string) int {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return 0
	}
	if first < consonantStart || first > indepVowelEnd {
		return size
	}

	length := size
	rest := s[length:]
	for len(rest) > 0 {
		c, clen := utf8.DecodeRuneInString(rest)

		if IsCoeng(c) {
			if clen < len(rest) {
				sub, sublen := utf8.DecodeRuneInString(rest[clen:])
				if IsConsonant(sub) {
					length += clen + sublen
					rest = rest[clen+sublen:]
					continue
				}
			}
			break
		}

		if IsDependentVowel(c) || IsSign(c) {
			length += clen
			rest = rest[clen:]
			continue
		}

		break
	}
	return length
}

// NumberLength returns the byte length of the run of digits at the start
// of s, permitting a single ',' or '.' when it is immediately followed by
// another digit.
func NumberLength(s string) int {
	first, size := utf8.DecodeRuneInString(s)
	if !IsDigit(first) {
		return 0
	}

	length := size
	rest := s[length:]
	for len(rest) > 0 {
		c, clen := utf8.DecodeRuneInString(rest)
		if IsDigit(c) {
			length += clen
			rest = rest[clen:]
			continue
		}
		if c == ',' || c == '.' {
			next, nlen := utf8.DecodeRuneInString(rest[clen:])
			if IsDigit(next) {
				length += clen + nlen
				rest = rest[clen+nlen:]
				continue
			}
		}
		break
	}
	return length
}

// IsAcronymStart reports whether s begins a Khmer acronym: a cluster
// immediately followed by an ASCII full stop.
func IsAcronymStart(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	if first < consonantStart || first > indepVowelEnd {
		return false
	}
	clusterBytes := KhmerClusterLength(s)
	if clusterBytes == 0 || clusterBytes >= len(s) {
		return false
	}
	return s[clusterBytes] == '.'
}

// AcronymLength returns the byte length of the run of dot-terminated
// clusters at the start of s, or 0 if s does not start an acronym.
func AcronymLength(s string) int {
	length := 0
	rest := s
	for len(rest) > 0 {
		first, _ := utf8.DecodeRuneInString(rest)
		if first < consonantStart || first > indepVowelEnd {
			break
		}
		clusterBytes := KhmerClusterLength(rest)
		if clusterBytes == 0 || clusterBytes >= len(rest) {
			break
		}
		if rest[clusterBytes] != '.' {
			break
		}
		length += clusterBytes + 1
		rest = rest[clusterBytes+1:]
	}
	return length
}
