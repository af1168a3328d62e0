/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips combining marks, so "Amélie" and "amelie"
// compare equal. This mirrors the unicode61 remove_diacritics tokenizer the
// FTS tables were built with.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// ftsQuery turns free-form user input into an FTS5 MATCH expression of quoted
// prefix terms: `big leb` becomes `"big"* "leb"*`. Returns "" when the input
// contains no searchable tokens.
func ftsQuery(input string) string {
	tokens := strings.FieldsFunc(fold(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(tokens) == 0 {
		return ""
	}

	var expr strings.Builder
	for i, token := range tokens {
		if i > 0 {
			expr.WriteByte(' ')
		}
		expr.WriteByte('"')
		expr.WriteString(token)
		expr.WriteString(`"*`)
	}
	return expr.String()
}
