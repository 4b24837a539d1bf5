package fuzzy

import (
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn/sqlfntest"
)

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int64
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abcd", 1},
		{"abc", "acb", 1},
		{"ca", "abc", 3},
		{"kitten", "sitting", 3},
		{"привет", "пирвет", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := DamerauLevenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("DamerauLevenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	if got := Levenshtein("kitten", "sitting"); got != 3 {
		t.Errorf("Levenshtein() = %d, want 3", got)
	}
	// A transposition costs two plain edits.
	if got := Levenshtein("abc", "acb"); got != 2 {
		t.Errorf("Levenshtein() = %d, want 2", got)
	}
}

func TestHamming(t *testing.T) {
	if got := Hamming("karolin", "kathrin"); got != 3 {
		t.Errorf("Hamming() = %d, want 3", got)
	}
	if got := Hamming("abc", "ab"); got != -1 {
		t.Errorf("Hamming() = %d, want -1 for unequal lengths", got)
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("abc", "abc"); got != 1 {
		t.Errorf("Similarity() = %v, want 1", got)
	}
	if got := Similarity("abc", "xyz"); got != 0 {
		t.Errorf("Similarity() = %v, want 0", got)
	}
}

func TestInit_SQL(t *testing.T) {
	db := sqlfntest.OpenWith(t, func(c *sqlite3.SQLiteConn) error { return Init(c) })

	if got := db.Int("dlevenshtein('abc', 'abcd')"); got != 1 {
		t.Errorf("dlevenshtein() = %d, want 1", got)
	}
	if got := db.Int("levenshtein('flaw', 'lawn')"); got != 2 {
		t.Errorf("levenshtein() = %d, want 2", got)
	}
}
