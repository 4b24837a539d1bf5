// Package unicode registers locale-independent Unicode case mapping and
// accent folding, which SQLite's built-in upper() and lower() lack for
// non-ASCII text.
package unicode

import (
	stdunicode "unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// Init registers the unicode functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Scalar("nupper", Upper),
		sqlfn.Scalar("nlower", Lower),
		sqlfn.Scalar("casefold", Fold),
		sqlfn.Scalar("unaccent", Unaccent),
	)
}

// Casers keep state between calls, so each call gets its own.

// Upper maps s to upper case.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Lower maps s to lower case.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Fold applies full Unicode case folding, for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Unaccent strips combining marks: "hôtel" becomes "hotel".
func Unaccent(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(stdunicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return "", err
	}
	return out, nil
}
