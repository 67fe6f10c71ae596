package dictionary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultWeight is assigned to lines that carry only a word.
const DefaultWeight = 1

var (
	// ErrEmptyDictionary is returned when a dictionary yields no entries.
	ErrEmptyDictionary = errors.New("dictionary: no entries")
	// ErrMalformedLine is returned by ParseLine for lines that cannot be used.
	ErrMalformedLine = errors.New("dictionary: malformed line")
)

// Entry is one word with its frequency weight.
type Entry struct {
	Word   string
	Weight int
}

// ParseLine reads a single "word" or "word weight" line.
// Blank lines return ok=false with no error. Fields after the weight are ignored.
func ParseLine(line string) (entry Entry, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Entry{}, false, nil
	}

	entry = Entry{Word: fields[0], Weight: DefaultWeight}
	if len(fields) == 1 {
		return entry, true, nil
	}

	weight, convErr := strconv.Atoi(fields[1])
	if convErr != nil {
		return Entry{}, false, fmt.Errorf("%w: weight %q is not a number", ErrMalformedLine, fields[1])
	}
	if weight < 0 {
		return Entry{}, false, fmt.Errorf("%w: weight %d is negative", ErrMalformedLine, weight)
	}
	entry.Weight = weight
	return entry, true, nil
}
