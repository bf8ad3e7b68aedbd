package khmer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// LoadErrorKind enumerates the ways a dictionary load can fail.
type LoadErrorKind int

const (
	FileTooSmall LoadErrorKind = iota
	InvalidMagic
	Truncated
	IoError
)

func (k LoadErrorKind) String() string {
	switch k {
	case FileTooSmall:
		return "file too small"
	case InvalidMagic:
		return "invalid magic"
	case Truncated:
		return "truncated"
	case IoError:
		return "i/o error"
	default:
		return "unknown"
	}
}

// LoadError is returned by LoadDictionary/LoadDictionaryFromBytes on
// failure. It wraps an underlying error where one exists (IoError), so
// callers can still errors.Is/errors.As through to it.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("khmer: load dictionary %q: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("khmer: load dictionary: %s", e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

const (
	kdicHeaderSize = 32 // magic(4) + version(4) + num_entries(4) + table_size(4) + default_cost(4) + unknown_cost(4) + max_word_length(4) + padding(4)
	kdicEntrySize  = 8  // name_offset(4) + cost(4)
)

var kdicMagic = [4]byte{'K', 'D', 'I', 'C'}

// Dictionary is a read-only, memory-mapped open-addressed hash table
// mapping UTF-8 byte sequences to floating-point costs. It is immutable
// after construction and safe for concurrent lookups from any number of
// goroutines. Callers must call Close when done with a mmap-backed
// Dictionary to release the mapping.
type Dictionary struct {
	bytes   []byte
	mmapped bool

	Version       uint32
	NumEntries    uint32
	TableSize     uint32
	DefaultCost   float32
	UnknownCost   float32
	MaxWordLength uint32

	mask     uint32
	tableOff int
	poolOff  int
}

// LoadDictionary memory-maps the KDIC file at path and parses its header.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Kind: IoError, Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Kind: IoError, Path: path, Err: err}
	}
	size := info.Size()
	if size == 0 {
		return nil, &LoadError{Kind: FileTooSmall, Path: path}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &LoadError{Kind: IoError, Path: path, Err: err}
	}

	d, parseErr := parseDictionary(data, true)
	if parseErr != nil {
		_ = unix.Munmap(data)
		if le, ok := parseErr.(*LoadError); ok {
			le.Path = path
			return nil, le
		}
		return nil, parseErr
	}
	return d, nil
}

// LoadDictionaryFromBytes parses a KDIC file already read into memory. The
// returned Dictionary takes ownership of bytes and does not copy it.
func LoadDictionaryFromBytes(data []byte) (*Dictionary, error) {
	return parseDictionary(data, false)
}

func parseDictionary(data []byte, mmapped bool) (*Dictionary, error) {
	if len(data) < kdicHeaderSize {
		return nil, &LoadError{Kind: FileTooSmall}
	}

	var magic [4]byte
	copy(magic[:], data[0:4])
	if magic != kdicMagic {
		return nil, &LoadError{Kind: InvalidMagic}
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	numEntries := binary.LittleEndian.Uint32(data[8:12])
	tableSize := binary.LittleEndian.Uint32(data[12:16])
	defaultCost := math.Float32frombits(binary.LittleEndian.Uint32(data[16:20]))
	unknownCost := math.Float32frombits(binary.LittleEndian.Uint32(data[20:24]))
	maxWordLength := binary.LittleEndian.Uint32(data[24:28])

	tableOff := kdicHeaderSize
	tableBytes := int(tableSize) * kdicEntrySize
	poolOff := tableOff + tableBytes
	if tableBytes < 0 || poolOff > len(data) {
		return nil, &LoadError{Kind: Truncated}
	}
	if tableSize == 0 || tableSize&(tableSize-1) != 0 {
		return nil, &LoadError{Kind: Truncated}
	}

	return &Dictionary{
		bytes:         data,
		mmapped:       mmapped,
		Version:       version,
		NumEntries:    numEntries,
		TableSize:     tableSize,
		DefaultCost:   defaultCost,
		UnknownCost:   unknownCost,
		MaxWordLength: maxWordLength,
		mask:          tableSize - 1,
		tableOff:      tableOff,
		poolOff:       poolOff,
	}, nil
}

// Close releases the dictionary's backing mapping. It is a no-op for a
// Dictionary loaded from an in-memory byte slice.
func (d *Dictionary) Close() error {
	if d == nil || !d.mmapped {
		return nil
	}
	b := d.bytes
	d.bytes = nil
	return unix.Munmap(b)
}

func (d *Dictionary) entryAt(idx uint32) (nameOffset uint32, cost float32) {
	off := d.tableOff + int(idx)*kdicEntrySize
	nameOffset = binary.LittleEndian.Uint32(d.bytes[off : off+4])
	cost = math.Float32frombits(binary.LittleEndian.Uint32(d.bytes[off+4 : off+8]))
	return
}

func (d *Dictionary) poolBytes(offset uint32) []byte {
	start := d.poolOff + int(offset)
	end := start
	for d.bytes[end] != 0 {
		end++
	}
	return d.bytes[start:end]
}

// lookupHash probes the table starting at hash&mask using linear probing,
// terminating at the first empty slot (name_offset == 0). hash must equal
// djb2(word).
func (d *Dictionary) lookupHash(hash uint32, word []byte) (float32, bool) {
	idx := hash & d.mask
	for {
		nameOffset, cost := d.entryAt(idx)
		if nameOffset == 0 {
			return 0, false
		}
		if bytes.Equal(d.poolBytes(nameOffset), word) {
			return cost, true
		}
		idx = (idx + 1) & d.mask
	}
}

// Lookup returns the cost of word if it is present in the dictionary.
func (d *Dictionary) Lookup(word []byte) (float32, bool) {
	if d == nil {
		return 0, false
	}
	return d.lookupHash(djb2(word), word)
}
