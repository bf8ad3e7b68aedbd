package main

import "strings"

// Coeng Ta/Da are visually near-identical subscripts that working
// dictionaries routinely confuse; Coeng Ro ordering varies across input
// sources. Both are folded into the compiled dictionary as extra entries
// sharing the canonical word's cost, so the DP decoder's dictionary walk
// recognizes either spelling without the core needing to know about it.
const (
	coengTa = "្ត"
	coengDa = "្ដ"
)

// generateVariants returns the alternate spellings of word that should
// share its cost, not including word itself.
func generateVariants(word string) []string {
	variants := make(map[string]bool)

	if strings.Contains(word, coengTa) {
		variants[strings.ReplaceAll(word, coengTa, coengDa)] = true
	}
	if strings.Contains(word, coengDa) {
		variants[strings.ReplaceAll(word, coengDa, coengTa)] = true
	}

	baseSet := map[string]bool{word: true}
	for v := range variants {
		baseSet[v] = true
	}
	for w := range baseSet {
		if swapped := swapCoengRoOrder(w); swapped != w {
			variants[swapped] = true
		}
	}

	result := make([]string, 0, len(variants))
	for v := range variants {
		if v != word {
			result = append(result, v)
		}
	}
	return result
}

// swapCoengRoOrder rewrites a Coeng+Ro immediately followed by a second
// Coeng+X pair into Coeng+X, Coeng+Ro, matching an alternate subscript
// stacking order seen in some source text.
func swapCoengRoOrder(word string) string {
	runes := []rune(word)
	n := len(runes)
	if n < 4 {
		return word
	}

	result := make([]rune, 0, n)
	i := 0
	changed := false
	for i < n {
		if i+3 < n &&
			runes[i] == 0x17D2 && runes[i+1] == 0x179A &&
			runes[i+2] == 0x17D2 && runes[i+3] != 0x179A {
			result = append(result, runes[i+2], runes[i+3], runes[i], runes[i+1])
			i += 4
			changed = true
			continue
		}
		result = append(result, runes[i])
		i++
	}
	if !changed {
		return word
	}
	return string(result)
}
