package xbrlfacts

import (
	"path"
	"strings"
)

// Archive is the decompressed content of a filing archive.
// Entry paths are kept exactly as stored in the container.
type Archive struct {
	paths   []string
	entries map[string][]byte
}

// NewArchive creates an Archive from entries in archive order.
// A repeated path keeps its first position and its last content.
func NewArchive(paths []string, entries map[string][]byte) *Archive {
	a := &Archive{entries: make(map[string][]byte, len(entries))}
	for _, p := range paths {
		content, ok := entries[p]
		if !ok {
			continue
		}
		if _, seen := a.entries[p]; !seen {
			a.paths = append(a.paths, p)
		}
		a.entries[p] = content
	}
	return a
}

// Paths returns entry paths in archive order.
func (a *Archive) Paths() []string {
	out := make([]string, len(a.paths))
	copy(out, a.paths)
	return out
}

// Content returns the content of the entry at path.
func (a *Archive) Content(path string) ([]byte, bool) {
	b, ok := a.entries[path]
	return b, ok
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.paths)
}

// ArchiveExtractor decompresses a filing archive held in memory.
type ArchiveExtractor interface {
	// Extract returns every entry of the archive with its full content.
	// Returns an *ArchiveError if the container is malformed or any entry
	// cannot be read completely; no partial archive is returned.
	Extract(data []byte) (*Archive, error)
}

// DefaultCandidatePrefix is the file name prefix EDINET uses for the
// inline-XBRL documents of the main financial statements.
const DefaultCandidatePrefix = "0105"

// CandidateFilter selects the documents of an archive to search for facts.
type CandidateFilter struct {
	// Prefixes match the start of the entry's base name, case-insensitively.
	Prefixes []string

	// Extensions, if set, restrict matches to these file extensions
	// (including the dot, compared case-insensitively).
	Extensions []string
}

// DefaultCandidateFilter returns the filter for EDINET financial statements.
func DefaultCandidateFilter() CandidateFilter {
	return CandidateFilter{Prefixes: []string{DefaultCandidatePrefix}}
}

// Match returns true if the entry path passes the filter.
func (f CandidateFilter) Match(p string) bool {
	base := strings.ToLower(path.Base(p))
	if strings.HasSuffix(p, "/") {
		return false
	}

	if len(f.Extensions) > 0 {
		ext := strings.ToLower(path.Ext(base))
		matched := false
		for _, e := range f.Extensions {
			if strings.ToLower(e) == ext {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, prefix := range f.Prefixes {
		if strings.HasPrefix(base, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// SelectCandidates returns the archive paths that pass the filter, in archive
// order. An archive without matching documents yields an empty slice.
func SelectCandidates(a *Archive, filter CandidateFilter) []string {
	candidates := []string{}
	for _, p := range a.paths {
		if filter.Match(p) {
			candidates = append(candidates, p)
		}
	}
	return candidates
}
