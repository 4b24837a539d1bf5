// Package text registers Unicode-aware string helpers.
//
// Positions and lengths count runes, not bytes. Positions are 1-based;
// negative positions count from the end of the string.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// Init registers the text functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Scalar("text_substring", Substring),
		sqlfn.Scalar("text_split", Split),
		sqlfn.Scalar("text_translate", Translate),
		sqlfn.Scalar("text_reverse", Reverse),
		sqlfn.Scalar("text_length", Length),
		sqlfn.Scalar("text_concat", Concat),
	)
}

// Substring returns the runes of s starting at start. The optional length
// limits the result.
func Substring(s string, start int64, length ...int64) string {
	r := []rune(s)
	n := int64(len(r))

	switch {
	case start < 0:
		start = max(n+start, 0)
	case start > 0:
		start--
	}
	if start >= n {
		return ""
	}

	end := n
	if len(length) > 0 {
		if length[0] <= 0 {
			return ""
		}
		end = min(start+length[0], n)
	}
	return string(r[start:end])
}

// Split splits s by sep and returns the n-th part, or NULL when n is out of
// range.
func Split(s, sep string, n int64) any {
	parts := strings.Split(s, sep)
	count := int64(len(parts))

	switch {
	case n > 0 && n <= count:
		return parts[n-1]
	case n < 0 && -n <= count:
		return parts[count+n]
	default:
		return nil
	}
}

// Translate replaces each rune of s found in from with the rune at the same
// position in to. Runes of from without a counterpart are removed.
func Translate(s, from, to string) string {
	src, dst := []rune(from), []rune(to)
	mapping := make(map[rune]rune, len(src))
	for i, r := range src {
		if _, seen := mapping[r]; seen {
			continue
		}
		if i < len(dst) {
			mapping[r] = dst[i]
		} else {
			mapping[r] = -1
		}
	}
	return strings.Map(func(r rune) rune {
		if m, ok := mapping[r]; ok {
			return m
		}
		return r
	}, s)
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// Length returns the number of runes in s.
func Length(s string) int64 {
	return int64(utf8.RuneCountInString(s))
}

// Concat joins its arguments, skipping NULLs.
func Concat(args ...any) string {
	var b strings.Builder
	for _, a := range args {
		if sqlfn.IsNull(a) {
			continue
		}
		b.WriteString(sqlfn.Text(a))
	}
	return b.String()
}
