package regex

import (
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn/sqlfntest"
)

func openTestDB(t *testing.T) *sqlfntest.DB {
	t.Helper()
	return sqlfntest.OpenWith(t, func(c *sqlite3.SQLiteConn) error { return Init(c) })
}

func TestFunctions(t *testing.T) {
	db := openTestDB(t)

	tests := []struct {
		expr string
		want string
	}{
		{`regexp_replace('1 10 100', '\d+', '**')`, "** ** **"},
		{`regexp_replace('John Smith', '(\w+) (\w+)', '$2 $1')`, "Smith John"},
		{`regexp_substr('abcdef', 'b(.)d')`, "bcd"},
		{`regexp_capture('abcdef', 'b(.)d', 1)`, "c"},
		{`regexp_capture('abcdef', 'b(.)d')`, "bcd"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := db.String(tt.expr); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestNoMatchIsNull(t *testing.T) {
	db := openTestDB(t)

	for _, expr := range []string{
		`regexp_substr('abc', '\d')`,
		`regexp_capture('abc', 'b(x)?', 1)`,
		`regexp_capture('abc', 'b', 5)`,
	} {
		if !db.IsNull(expr) {
			t.Errorf("%s should be NULL", expr)
		}
	}
}

func TestRegexpOperator(t *testing.T) {
	db := openTestDB(t)

	if got := db.Int(`'abc123' REGEXP '\d+$'`); got != 1 {
		t.Errorf("REGEXP = %d, want 1", got)
	}
	if got := db.Int(`regexp_like('abc', '^\d')`); got != 0 {
		t.Errorf("regexp_like() = %d, want 0", got)
	}
}

func TestInvalidPattern(t *testing.T) {
	db := openTestDB(t)

	if !db.Fails(`regexp_like('abc', '(')`) {
		t.Error("regexp_like() expected error for invalid pattern")
	}
}

func TestCache_Bounded(t *testing.T) {
	c := newCache(2)
	for _, p := range []string{"a", "b", "c"} {
		if _, err := c.compile(p); err != nil {
			t.Fatalf("compile(%q) error = %v", p, err)
		}
	}
	if len(c.pats) > 2 {
		t.Errorf("cache size = %d, want <= 2", len(c.pats))
	}
	if _, ok := c.pats["c"]; !ok {
		t.Error("most recent pattern should be cached")
	}
}
