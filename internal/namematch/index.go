package namematch

import (
	"strings"
	"unicode/utf8"

	"github.com/jimezsa/intentpipe/internal/models"
)

// minKeyLength rejects normalized names too short to match unambiguously.
const minKeyLength = 2

// Index maps normalized company names to registry rows. Keys keep their
// insertion order so containment scans are reproducible run-to-run.
type Index struct {
	keys  []string
	byKey map[string][]models.Company
}

// NewIndex builds an index over the registry in load order. Companies that
// normalize to the same key share an entry; the first loaded wins ties.
func NewIndex(companies []models.Company) *Index {
	ix := &Index{byKey: make(map[string][]models.Company, len(companies))}
	for _, c := range companies {
		key := Normalize(c.Name)
		if _, ok := ix.byKey[key]; !ok {
			ix.keys = append(ix.keys, key)
		}
		ix.byKey[key] = append(ix.byKey[key], c)
	}
	return ix
}

// Len returns the number of distinct normalized keys.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// Resolve matches a free-text employer name against the registry: exact
// normalized lookup first, then a containment scan (either side substring
// of the other) in key insertion order. Names whose normalized form is
// shorter than two runes never match.
func (ix *Index) Resolve(employerName string) (models.Company, bool) {
	norm := Normalize(employerName)
	if utf8.RuneCountInString(norm) < minKeyLength {
		return models.Company{}, false
	}

	if rows, ok := ix.byKey[norm]; ok && len(rows) > 0 {
		return rows[0], true
	}

	for _, key := range ix.keys {
		if utf8.RuneCountInString(key) < minKeyLength {
			continue
		}
		if strings.Contains(norm, key) || strings.Contains(key, norm) {
			return ix.byKey[key][0], true
		}
	}

	return models.Company{}, false
}
