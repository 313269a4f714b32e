package ingest

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes a hash of the archive bytes using xxhash.
func ComputeHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// TruncatePath shortens an archive path for display, keeping the end which
// is more informative.
func TruncatePath(p string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return p[:min(len(p), maxLen)]
	}
	if len(p) <= maxLen {
		return p
	}
	return "..." + p[len(p)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDiagnostics summarizes diagnostics in one line per document, so
// "no documents", "no facts" and "unparsable document" read differently.
func FormatDiagnostics(d *Diagnostics) string {
	if d.NoCandidates() {
		return fmt.Sprintf("no candidate documents among %d entries", d.Entries)
	}

	s := fmt.Sprintf("%d candidate documents among %d entries", len(d.Candidates), d.Entries)
	for _, doc := range d.Documents {
		name := TruncatePath(doc.Path, 60)
		if doc.Err != nil {
			s += fmt.Sprintf("\n  %s: failed: %v", name, doc.Err)
			continue
		}
		s += fmt.Sprintf("\n  %s: %d elements, %d facts, %d skipped", name, doc.Elements, doc.Facts, doc.Skipped)
		for _, st := range doc.Stages {
			s += fmt.Sprintf(" [%s=%d]", st.Stage, st.Matches)
		}
	}
	for _, e := range d.Skipped {
		s += fmt.Sprintf("\n  skipped: %v", e)
	}
	return s
}
