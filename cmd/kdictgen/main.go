// Command kdictgen compiles a newline-delimited word list (and an optional
// JSON word→frequency map) into the binary KDIC dictionary consumed by
// cmd/khmer and pkg/khmer.
package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	minFreqFloor       = 5.0
	defaultDefaultCost = 10.0
	defaultUnknownCost = 20.0

	kdicHeaderSize = 32
	kdicEntrySize  = 8
)

var kdicMagic = [4]byte{'K', 'D', 'I', 'C'}

func main() {
	wordsPath := flag.String("words", "", "path to newline-delimited word list (required)")
	freqPath := flag.String("freq", "", "optional path to a JSON word->frequency map")
	outputPath := flag.String("output", "khmer_dictionary.kdict", "output path for the compiled KDIC file")
	loadFactor := flag.Float64("load-factor", 0.5, "target table load factor (0,1); table size is rounded up to a power of two")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *wordsPath == "" {
		log.Fatal().Msg("kdictgen: -words is required")
	}

	words, err := readWords(*wordsPath)
	if err != nil {
		log.Fatal().Err(err).Str("words_path", *wordsPath).Msg("read word list")
	}
	log.Info().Int("num_words", len(words)).Str("words_path", *wordsPath).Msg("loaded word list")

	costs, defaultCost, unknownCost := deriveCosts(words, *freqPath)

	start := time.Now()
	data := compile(costs, defaultCost, unknownCost, *loadFactor)
	log.Info().
		Int("num_entries", len(costs)).
		Float32("default_cost", defaultCost).
		Float32("unknown_cost", unknownCost).
		Dur("duration_ms", time.Since(start)).
		Msg("compiled dictionary table")

	if err := os.WriteFile(*outputPath, data, 0o644); err != nil {
		log.Fatal().Err(err).Str("output_path", *outputPath).Msg("write KDIC file")
	}
	log.Info().Str("output_path", *outputPath).Int("bytes", len(data)).Msg("wrote KDIC file")
}

// readWords reads one word per line, trimming whitespace and skipping
// blank lines.
func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 1<<20)
	scanner.Buffer(buf, len(buf))
	for scanner.Scan() {
		w := trimSpace(scanner.Text())
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpaceByte(s[start]) {
		start++
	}
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// deriveCosts computes a per-word cost map (word and its orthographic
// variants, per generateVariants) using the frequency-floored
// -log10(probability) formula, or a flat default cost when no frequency
// file is given.
func deriveCosts(words []string, freqPath string) (costs map[string]float32, defaultCost, unknownCost float32) {
	costs = make(map[string]float32, len(words)*2)

	expand := func(w string, cost float32) {
		costs[w] = cost
		for _, v := range generateVariants(w) {
			if _, exists := costs[v]; !exists {
				costs[v] = cost
			}
		}
	}

	if freqPath == "" {
		for _, w := range words {
			expand(w, defaultDefaultCost)
		}
		return costs, defaultDefaultCost, defaultUnknownCost
	}

	f, err := os.Open(freqPath)
	if err != nil {
		log.Warn().Err(err).Str("freq_path", freqPath).Msg("frequency file not found, using default costs")
		for _, w := range words {
			expand(w, defaultDefaultCost)
		}
		return costs, defaultDefaultCost, defaultUnknownCost
	}
	defer f.Close()

	var freqs map[string]float64
	if err := json.NewDecoder(f).Decode(&freqs); err != nil {
		log.Fatal().Err(err).Str("freq_path", freqPath).Msg("parse frequency file")
	}

	effective := make(map[string]float32, len(freqs))
	var totalTokens float32
	for w, count := range freqs {
		eff := float32(math.Max(count, minFreqFloor))
		effective[w] = eff
		totalTokens += eff
	}

	if totalTokens == 0 {
		for _, w := range words {
			expand(w, defaultDefaultCost)
		}
		return costs, defaultDefaultCost, defaultUnknownCost
	}

	minProb := minFreqFloor / totalTokens
	defaultCost = float32(-math.Log10(float64(minProb)))
	unknownCost = defaultCost + 5.0

	for _, w := range words {
		count, ok := effective[w]
		if !ok {
			count = minFreqFloor
		}
		prob := count / totalTokens
		expand(w, float32(-math.Log10(float64(prob))))
	}
	log.Info().Int("num_frequencies", len(freqs)).Msg("loaded frequency map")
	return costs, defaultCost, unknownCost
}

type slot struct {
	nameOffset uint32
	cost       float32
}

// compile serializes costs into the KDIC binary layout: a
// little-endian header, a power-of-two open-addressed hash table with djb2
// slot assignment and linear-probe collision resolution, and a
// null-terminated UTF-8 string pool.
func compile(costs map[string]float32, defaultCost, unknownCost float32, loadFactor float64) []byte {
	tableSize := nextPow2(int(float64(len(costs))/maxFloat(loadFactor, 0.01)) + 1)
	if tableSize == 0 {
		tableSize = 1
	}
	mask := uint32(tableSize - 1)

	table := make([]slot, tableSize)
	pool := []byte{0}
	maxWordLen := 0

	for w, cost := range costs {
		b := []byte(w)
		if len(b) > maxWordLen {
			maxWordLen = len(b)
		}
		idx := djb2(b) & mask
		for table[idx].nameOffset != 0 {
			idx = (idx + 1) & mask
		}
		table[idx] = slot{nameOffset: uint32(len(pool)), cost: cost}
		pool = append(pool, b...)
		pool = append(pool, 0)
	}

	buf := make([]byte, kdicHeaderSize)
	copy(buf[0:4], kdicMagic[:])
	binary.LittleEndian.PutUint32(buf[4:8], 1)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(costs)))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(tableSize))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(defaultCost))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(unknownCost))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(maxWordLen))
	binary.LittleEndian.PutUint32(buf[28:32], 0)

	for _, s := range table {
		var entry [kdicEntrySize]byte
		binary.LittleEndian.PutUint32(entry[0:4], s.nameOffset)
		binary.LittleEndian.PutUint32(entry[4:8], math.Float32bits(s.cost))
		buf = append(buf, entry[:]...)
	}
	buf = append(buf, pool...)
	return buf
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// djb2 matches pkg/khmer's hash exactly: table placement at compile time
// must agree with the lookup the core performs at runtime.
func djb2(b []byte) uint32 {
	h := uint32(5381)
	for _, c := range b {
		h = h<<5 + h + uint32(c)
	}
	return h
}
