package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/khmer-segmenter/pkg/khmer"
)

const bom = '﻿'

// OutputRecord is one line of the JSON-lines result file.
type OutputRecord struct {
	ID      int    `json:"id"`
	Input   string `json:"input"`
	Segment string `json:"segment"`
}

func main() {
	dictPath := flag.String("dict", "khmer_dictionary.kdict", "path to a compiled KDIC dictionary file")
	inputPath := flag.String("input", "", "input text file, one sentence per line (required)")
	outputPath := flag.String("output", "", "output JSON-lines file (required)")
	separator := flag.String("separator", khmer.DefaultSeparator, "separator inserted between segmented words")
	limit := flag.Int("limit", 0, "limit number of lines processed (0 = unlimited)")
	threads := flag.Int("threads", 0, "number of worker goroutines (0 = runtime.NumCPU())")

	flag.StringVar(dictPath, "d", *dictPath, "path to a compiled KDIC dictionary file (short)")
	flag.StringVar(inputPath, "i", "", "input text file (short)")
	flag.StringVar(outputPath, "o", "", "output JSON-lines file (short)")
	flag.IntVar(limit, "l", 0, "limit number of lines processed (short)")
	flag.IntVar(threads, "t", 0, "number of worker goroutines (short)")

	noNorm := flag.Bool("no-norm", false, "disable normalization")
	noRepair := flag.Bool("no-repair", false, "disable repair mode")
	noAcronym := flag.Bool("no-acronym", false, "disable acronym detection")
	noMerging := flag.Bool("no-merging", false, "disable unknown-run merging")

	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: khmer -input <file> -output <file> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := khmer.DefaultConfig()
	cfg.EnableNormalization = !*noNorm
	cfg.EnableRepairMode = !*noRepair
	cfg.EnableAcronymDetection = !*noAcronym
	cfg.EnableUnknownMerging = !*noMerging

	if err := run(*dictPath, *inputPath, *outputPath, *separator, *limit, *threads, cfg); err != nil {
		log.Fatal().Err(err).Msg("khmer: run failed")
	}
}

func run(dictPath, inputPath, outputPath, separator string, limit, threads int, cfg khmer.Config) error {
	start := time.Now()

	dict, err := khmer.LoadDictionary(dictPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	defer dict.Close()

	log.Info().
		Str("dict_path", dictPath).
		Uint32("num_entries", dict.NumEntries).
		Dur("duration_ms", time.Since(start)).
		Msg("dictionary loaded")

	lines, err := readLines(inputPath, limit)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	log.Info().Str("input_path", inputPath).Int("num_lines", len(lines)).Msg("input read")

	numWorkers := threads
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	log.Info().Int("num_workers", numWorkers).Msg("starting segmentation")

	startProcess := time.Now()
	results := make([]string, len(lines))

	segmenter := khmer.NewSegmenter(dict, cfg)

	var wg sync.WaitGroup
	jobs := make(chan int, len(lines))
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				record := OutputRecord{
					ID:      i,
					Input:   lines[i],
					Segment: segmenter.Segment(lines[i], separator),
				}
				jsonBytes, err := json.Marshal(record)
				if err != nil {
					log.Error().Err(err).Int("line", i).Msg("marshal result")
					continue
				}
				results[i] = string(jsonBytes)
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := writeLines(outputPath, results); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	duration := time.Since(startProcess)
	log.Info().
		Str("output_path", outputPath).
		Int("num_lines", len(lines)).
		Dur("duration_ms", duration).
		Float64("lines_per_sec", float64(len(lines))/duration.Seconds()).
		Msg("segmentation complete")
	return nil
}

// readLines reads up to limit (0 = unlimited) non-empty lines from path,
// stripping a leading UTF-8 byte-order mark from the first line.
func readLines(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	const maxCapacity = 1 << 20
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)

	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, string(bom))
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if limit > 0 && len(lines) >= limit {
			break
		}
	}
	return lines, scanner.Err()
}

func writeLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := w.WriteString(l); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
