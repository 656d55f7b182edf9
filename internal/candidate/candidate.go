package candidate

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoCandidates is returned when there is nothing to pick from.
var ErrNoCandidates = errors.New("no candidates")

// Record is one raw entry from a candidate source.
type Record struct {
	// Label is the human-readable part (e.g. a page title). May be empty.
	Label string
	// Locator is the value acted on after selection (e.g. a URL).
	Locator string
}

// Store is an immutable, index-addressable list of display strings.
// Build it once with New; it is never mutated afterwards.
type Store struct {
	records []Record
	display []string
}

// New builds a Store from records, keeping their order 1:1.
func New(records []Record) *Store {
	s := &Store{
		records: make([]Record, len(records)),
		display: make([]string, len(records)),
	}
	copy(s.records, records)
	for i, r := range records {
		s.display[i] = Display(r)
	}
	return s
}

// Display returns the single-line text shown for r: the locator alone when the
// label is blank, otherwise "<label> - <locator>".
func Display(r Record) string {
	label := strings.TrimSpace(singleLine(r.Label))
	locator := singleLine(r.Locator)
	if label == "" {
		return locator
	}
	return label + " - " + locator
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	return len(s.display)
}

// Display returns the display string at index i.
func (s *Store) Display(i int) string {
	return s.display[i]
}

// Record returns the raw record at index i.
func (s *Store) Record(i int) Record {
	return s.records[i]
}

// Check returns ErrNoCandidates for an empty store.
func (s *Store) Check() error {
	if s == nil || len(s.display) == 0 {
		return ErrNoCandidates
	}
	return nil
}

// singleLine replaces line breaks and other control characters with a space.
// A CRLF pair collapses to one space.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
