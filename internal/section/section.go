// Package section keeps the ordered hour sections shown by the list view.
//
// Sections run newest to oldest with strictly decreasing target hours and
// no duplicates. The sequence only changes through Reset and AppendOlder.
package section

import (
	"strconv"
	"time"

	"github.com/abelbrown/trendwatch/internal/trend"
)

// Section is the raw, unprojected result for one hour.
type Section struct {
	ID     string
	Target time.Time
	Items  []trend.Record
}

// IDFor derives the section identifier from its hour.
func IDFor(target time.Time) string {
	return "h" + strconv.FormatInt(target.UnixMilli(), 10)
}

// Store holds the section sequence. It is owned by a single goroutine,
// the UI loop, so it carries no lock.
type Store struct {
	sections []Section
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Reset replaces everything with a single section for target.
func (s *Store) Reset(target time.Time, items []trend.Record) {
	target = trend.TruncateHour(target, target.Location())
	s.sections = []Section{newSection(target, items)}
}

// Clear drops every section.
func (s *Store) Clear() {
	s.sections = nil
}

// NextOlder is the hour AppendOlder would add: one hour before the last
// section. ok is false when the store is empty.
func (s *Store) NextOlder() (time.Time, bool) {
	last, ok := s.Last()
	if !ok {
		return time.Time{}, false
	}
	return last.Target.Add(-time.Hour), true
}

// AppendOlder adds items as the section one hour before the current last
// one. It is a no-op, returning false, when the store is empty or that
// hour is already present anywhere in the sequence.
func (s *Store) AppendOlder(items []trend.Record) bool {
	candidate, ok := s.NextOlder()
	if !ok || s.Has(candidate) {
		return false
	}
	s.sections = append(s.sections, newSection(candidate, items))
	return true
}

// Has reports whether a section for target exists.
func (s *Store) Has(target time.Time) bool {
	for _, sec := range s.sections {
		if sec.Target.Equal(target) {
			return true
		}
	}
	return false
}

// Sections returns a copy of the sequence, newest first.
func (s *Store) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Last returns the oldest section.
func (s *Store) Last() (Section, bool) {
	if len(s.sections) == 0 {
		return Section{}, false
	}
	return s.sections[len(s.sections)-1], true
}

// Len is the number of sections.
func (s *Store) Len() int {
	return len(s.sections)
}

// Total is the number of raw records across all sections.
func (s *Store) Total() int {
	n := 0
	for _, sec := range s.sections {
		n += len(sec.Items)
	}
	return n
}

func newSection(target time.Time, items []trend.Record) Section {
	if items == nil {
		items = []trend.Record{}
	}
	return Section{ID: IDFor(target), Target: target, Items: items}
}
