package xbrlfacts_test

import (
	"testing"

	"github.com/fwojciec/xbrlfacts"
	"github.com/stretchr/testify/assert"
)

func newArchive(paths ...string) *xbrlfacts.Archive {
	entries := make(map[string][]byte, len(paths))
	for _, p := range paths {
		entries[p] = []byte(p)
	}
	return xbrlfacts.NewArchive(paths, entries)
}

func TestArchive(t *testing.T) {
	t.Parallel()

	t.Run("keeps archive order and content", func(t *testing.T) {
		t.Parallel()

		a := newArchive("XBRL/PublicDoc/0101010_honbun.htm", "XBRL/PublicDoc/0105010_honbun.htm")

		assert.Equal(t, 2, a.Len())
		assert.Equal(t, []string{"XBRL/PublicDoc/0101010_honbun.htm", "XBRL/PublicDoc/0105010_honbun.htm"}, a.Paths())
		content, ok := a.Content("XBRL/PublicDoc/0105010_honbun.htm")
		assert.True(t, ok)
		assert.Equal(t, "XBRL/PublicDoc/0105010_honbun.htm", string(content))
	})

	t.Run("reports missing entries", func(t *testing.T) {
		t.Parallel()

		_, ok := newArchive("a.htm").Content("b.htm")

		assert.False(t, ok)
	})

	t.Run("ignores paths without content", func(t *testing.T) {
		t.Parallel()

		a := xbrlfacts.NewArchive([]string{"a.htm", "b.htm"}, map[string][]byte{"a.htm": nil})

		assert.Equal(t, []string{"a.htm"}, a.Paths())
	})
}

func TestSelectCandidates(t *testing.T) {
	t.Parallel()

	t.Run("matches base name prefix case-insensitively", func(t *testing.T) {
		t.Parallel()

		a := newArchive(
			"XBRL/PublicDoc/0000000_header.htm",
			"XBRL/PublicDoc/0105010_honbun_ixbrl.htm",
			"XBRL/0105/readme.txt",
			"XBRL/PublicDoc/0105020_HONBUN_ixbrl.htm",
		)

		got := xbrlfacts.SelectCandidates(a, xbrlfacts.CandidateFilter{Prefixes: []string{"0105"}})

		assert.Equal(t, []string{
			"XBRL/PublicDoc/0105010_honbun_ixbrl.htm",
			"XBRL/PublicDoc/0105020_HONBUN_ixbrl.htm",
		}, got)
	})

	t.Run("compares prefix letters ignoring case", func(t *testing.T) {
		t.Parallel()

		a := newArchive("doc/Honbun.htm", "doc/other.htm")

		got := xbrlfacts.SelectCandidates(a, xbrlfacts.CandidateFilter{Prefixes: []string{"HONBUN"}})

		assert.Equal(t, []string{"doc/Honbun.htm"}, got)
	})

	t.Run("restricts by extension", func(t *testing.T) {
		t.Parallel()

		a := newArchive("PublicDoc/0105010.htm", "PublicDoc/0105010.xbrl")

		got := xbrlfacts.SelectCandidates(a, xbrlfacts.CandidateFilter{
			Prefixes:   []string{"0105"},
			Extensions: []string{".XBRL"},
		})

		assert.Equal(t, []string{"PublicDoc/0105010.xbrl"}, got)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		got := xbrlfacts.SelectCandidates(newArchive("manifest.xml"), xbrlfacts.DefaultCandidateFilter())

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
