// Package bloom provides document ID deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for deduplicating document IDs.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records an ID.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test returns true if the ID might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Set deduplicates IDs without false positives. The filter rules out most
// first sightings; its hits are confirmed against the recorded IDs.
type Set struct {
	filter *Filter
	ids    map[string]struct{}
}

// NewSet creates a Set sized for n expected IDs. fpRate is the false
// positive rate of the underlying filter.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter: NewFilter(n, fpRate),
		ids:    make(map[string]struct{}),
	}
}

// Seen records the ID and reports whether it was recorded before.
func (s *Set) Seen(id string) bool {
	if s.filter.Test(id) {
		if _, ok := s.ids[id]; ok {
			return true
		}
	}
	s.filter.Add(id)
	s.ids[id] = struct{}{}
	return false
}

// Len returns the number of distinct IDs recorded.
func (s *Set) Len() int {
	return len(s.ids)
}

// EstimatedCount returns the filter's estimate of the recorded IDs.
func (s *Set) EstimatedCount() uint {
	return s.filter.EstimatedCount()
}
