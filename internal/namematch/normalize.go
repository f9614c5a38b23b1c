package namematch

import (
	"strings"
	"unicode"
)

// Legal-entity forms stripped before comparison.
var legalForms = []string{"株式会社", "有限会社", "合同会社"}

// Normalize canonicalizes a free-text company name into a comparable key:
// legal-entity forms removed, all whitespace (including full-width space)
// dropped, full-width parentheses and alphanumerics folded to half-width,
// lowercased. Purely structural; idempotent.
func Normalize(name string) string {
	for _, form := range legalForms {
		name = strings.ReplaceAll(name, form, "")
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '（':
			b.WriteRune('(')
		case r == '）':
			b.WriteRune(')')
		case isFullWidthAlnum(r):
			b.WriteRune(r - 0xfee0)
		default:
			b.WriteRune(r)
		}
	}

	return strings.ToLower(b.String())
}

func isFullWidthAlnum(r rune) bool {
	return (r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ') || (r >= '０' && r <= '９')
}
