// Package dictionary reads word lists in the plain text "word [weight]" format.
package dictionary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
)

// Result describes one load.
type Result struct {
	Entries []Entry
	Lines   int
	Skipped int
}

// Load maps path into memory read-only and parses it.
// Malformed lines are logged and skipped. A file with no usable entries
// returns ErrEmptyDictionary alongside the (empty) result.
func Load(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat dictionary %s: %w", path, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("dictionary %s is a directory", path)
	}
	if info.Size() == 0 {
		return Result{}, fmt.Errorf("dictionary %s: %w", path, ErrEmptyDictionary)
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return Result{}, fmt.Errorf("failed to map dictionary %s: %w", path, err)
	}
	defer func() {
		if err := data.Unmap(); err != nil {
			log.Warnf("Failed to unmap dictionary %s: %v", path, err)
		}
	}()

	result, err := Read(bytes.NewReader(data))
	if err != nil {
		return result, fmt.Errorf("dictionary %s: %w", path, err)
	}
	log.Debugf("Parsed %s: %d entries from %d lines (%d skipped)", path, len(result.Entries), result.Lines, result.Skipped)
	return result, nil
}

// MaxLineLength bounds the lines Read parses. A line of MaxLineLength bytes or more
// is logged and counted as skipped.
const MaxLineLength = 1024 * 1024

// Read parses dictionary lines from r.
func Read(r io.Reader) (Result, error) {
	var result Result
	reader := bufio.NewReaderSize(r, MaxLineLength)

	for {
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, fmt.Errorf("failed to read line %d: %w", result.Lines+1, err)
		}
		result.Lines++

		if isPrefix {
			for isPrefix && err == nil {
				_, isPrefix, err = reader.ReadLine()
			}
			log.Warnf("Skipping line %d: longer than %d bytes", result.Lines, MaxLineLength)
			result.Skipped++
			if err != nil && !errors.Is(err, io.EOF) {
				return result, fmt.Errorf("failed to read line %d: %w", result.Lines, err)
			}
			continue
		}

		entry, ok, err := ParseLine(string(line))
		if err != nil {
			log.Warnf("Skipping line %d: %v", result.Lines, err)
			result.Skipped++
			continue
		}
		if ok {
			result.Entries = append(result.Entries, entry)
		}
	}
	if len(result.Entries) == 0 {
		return result, ErrEmptyDictionary
	}
	return result, nil
}
