// Package xbrlfacts extracts numeric facts from zipped inline-XBRL filings.
// It decompresses a filing archive, locates the tagged numeric elements of
// the primary financial-statement documents and decodes each of them into a
// signed, scaled amount, producing one flat fact table per archive.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., zip/, goquery/, sqlite/).
package xbrlfacts
