package uuid

import (
	"testing"

	guuid "github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn/sqlfntest"
)

const sample = "d1a5a8f6-5d12-4b7e-9b0a-3c1f6a2e9d44"

func openTestDB(t *testing.T) *sqlfntest.DB {
	t.Helper()
	return sqlfntest.OpenWith(t, func(c *sqlite3.SQLiteConn) error { return Init(c) })
}

func TestGenerate(t *testing.T) {
	db := openTestDB(t)

	if got := db.Int("length(uuid4())"); got != 36 {
		t.Errorf("length(uuid4()) = %d, want 36", got)
	}

	v4, err := guuid.Parse(db.String("gen_random_uuid()"))
	if err != nil {
		t.Fatalf("gen_random_uuid() not parsable: %v", err)
	}
	if v4.Version() != 4 {
		t.Errorf("gen_random_uuid() version = %d, want 4", v4.Version())
	}

	v7, err := guuid.Parse(db.String("uuid7()"))
	if err != nil {
		t.Fatalf("uuid7() not parsable: %v", err)
	}
	if v7.Version() != 7 {
		t.Errorf("uuid7() version = %d, want 7", v7.Version())
	}
}

func TestGenerate_NotConstantFolded(t *testing.T) {
	db := openTestDB(t)

	if got := db.Int("uuid4() = uuid4()"); got != 0 {
		t.Error("two uuid4() calls returned the same value")
	}
}

func TestConvert(t *testing.T) {
	db := openTestDB(t)

	if got := db.Int("length(uuid_blob(?))", sample); got != 16 {
		t.Errorf("length(uuid_blob()) = %d, want 16", got)
	}
	if got := db.String("uuid_str(uuid_blob(?))", sample); got != sample {
		t.Errorf("uuid_str(uuid_blob()) = %q, want %q", got, sample)
	}
	if got := db.String("uuid_str(?)", "{D1A5A8F6-5D12-4B7E-9B0A-3C1F6A2E9D44}"); got != sample {
		t.Errorf("uuid_str() = %q, want %q", got, sample)
	}
	if !db.IsNull("uuid_str('nope')") {
		t.Error("uuid_str('nope') should be NULL")
	}
}
