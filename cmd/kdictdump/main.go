// Command kdictdump loads a KDIC dictionary file and prints its header
// fields, for inspecting a compiled dictionary without writing code.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/khmer-segmenter/pkg/khmer"
)

func main() {
	path := flag.String("dict", "", "path to a KDIC dictionary file (required)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: kdictdump -dict <path>")
		os.Exit(1)
	}

	dict, err := khmer.LoadDictionary(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kdictdump: %v\n", err)
		os.Exit(1)
	}
	defer dict.Close()

	fmt.Printf("Magic:           KDIC\n")
	fmt.Printf("Version:         %d\n", dict.Version)
	fmt.Printf("Num Entries:     %d\n", dict.NumEntries)
	fmt.Printf("Table Size:      %d\n", dict.TableSize)
	fmt.Printf("Default Cost:    %g\n", dict.DefaultCost)
	fmt.Printf("Unknown Cost:    %g\n", dict.UnknownCost)
	fmt.Printf("Max Word Length: %d\n", dict.MaxWordLength)
}
