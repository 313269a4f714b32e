// Package ingest runs the fact-extraction pipeline for one filing archive.
// It coordinates decompression, document selection, element location,
// decoding and table assembly, and records what happened along the way.
package ingest

import (
	"path"
	"strings"

	"github.com/fwojciec/xbrlfacts"
)

// Ingester turns a filing archive into a fact table.
// An Ingester holds no per-call state and may be used from several
// goroutines at once.
type Ingester struct {
	Extractor xbrlfacts.ArchiveExtractor
	Decoder   xbrlfacts.FactDecoder
	Filter    xbrlfacts.CandidateFilter

	// Locators maps lowercase file extensions (".xbrl") to the locator
	// used for documents with that extension.
	Locators map[string]xbrlfacts.FactLocator

	// DefaultLocator searches documents with any other extension.
	DefaultLocator xbrlfacts.FactLocator
}

// Result holds the fact table of one archive and its diagnostics.
type Result struct {
	Table       *xbrlfacts.FactTable
	ContentHash string

	// Size is the length of the archive in bytes.
	Size int

	Diagnostics Diagnostics
}

// Diagnostics records what the pipeline found in one archive.
type Diagnostics struct {
	// Entries is the number of files in the archive.
	Entries int

	// Candidates are the selected document paths in archive order.
	Candidates []string

	// Documents has one report per candidate, in the same order.
	Documents []DocumentReport

	// Skipped lists elements that could not be decoded.
	Skipped []*xbrlfacts.ElementDecodeError
}

// DocumentReport describes the search of one candidate document.
type DocumentReport struct {
	Path     string
	Stages   []xbrlfacts.StageReport
	Elements int
	Facts    int
	Skipped  int

	// Err is set when the document could not be parsed.
	Err error
}

// NoCandidates returns true if no document of the archive was selected.
func (d *Diagnostics) NoCandidates() bool {
	return len(d.Candidates) == 0
}

// Elements returns the number of tagged elements located across documents.
func (d *Diagnostics) Elements() int {
	n := 0
	for _, doc := range d.Documents {
		n += doc.Elements
	}
	return n
}

// Failed returns the reports of documents that could not be parsed.
func (d *Diagnostics) Failed() []DocumentReport {
	var failed []DocumentReport
	for _, doc := range d.Documents {
		if doc.Err != nil {
			failed = append(failed, doc)
		}
	}
	return failed
}

// Empty returns true if the archive yielded no tagged elements, either
// because no document was selected or because the search found nothing.
func (d *Diagnostics) Empty() bool {
	return d.Elements() == 0
}

// Ingest extracts the archive and decodes the facts of every candidate
// document. Only a malformed archive is returned as an error; unparsable
// documents and undecodable elements are recorded in the diagnostics.
func (i *Ingester) Ingest(data []byte) (*Result, error) {
	archive, err := i.Extractor.Extract(data)
	if err != nil {
		return nil, err
	}

	result := &Result{ContentHash: ComputeHash(data), Size: len(data)}
	result.Diagnostics.Entries = archive.Len()
	result.Diagnostics.Candidates = xbrlfacts.SelectCandidates(archive, i.Filter)

	var facts []xbrlfacts.Fact
	for _, p := range result.Diagnostics.Candidates {
		content, _ := archive.Content(p)
		docFacts, report := i.ingestDocument(p, content)
		facts = append(facts, docFacts...)
		result.Diagnostics.Documents = append(result.Diagnostics.Documents, report.DocumentReport)
		result.Diagnostics.Skipped = append(result.Diagnostics.Skipped, report.skipped...)
	}

	result.Table = xbrlfacts.Assemble(facts)
	return result, nil
}

type documentResult struct {
	DocumentReport
	skipped []*xbrlfacts.ElementDecodeError
}

func (i *Ingester) ingestDocument(p string, content []byte) ([]xbrlfacts.Fact, documentResult) {
	report := documentResult{DocumentReport: DocumentReport{Path: p}}

	loc, err := i.locatorFor(p).Locate(content)
	if err != nil {
		report.Err = err
		return nil, report
	}
	report.Stages = loc.Stages
	report.Elements = len(loc.Elements)

	facts, skipped := xbrlfacts.DecodeAll(i.Decoder, loc.Elements)
	report.Facts = len(facts)
	report.Skipped = len(skipped)
	report.skipped = skipped

	return facts, report
}

func (i *Ingester) locatorFor(p string) xbrlfacts.FactLocator {
	if l, ok := i.Locators[strings.ToLower(path.Ext(p))]; ok {
		return l
	}
	return i.DefaultLocator
}
