package ipaddr

import (
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn/sqlfntest"
)

func TestFunctions(t *testing.T) {
	db := sqlfntest.OpenWith(t, func(c *sqlite3.SQLiteConn) error { return Init(c) })

	t.Run("iphost", func(t *testing.T) {
		if got := db.String("iphost('192.168.16.12/24')"); got != "192.168.16.12" {
			t.Errorf("iphost() = %q, want %q", got, "192.168.16.12")
		}
	})

	t.Run("ipcontains", func(t *testing.T) {
		if got := db.Int("ipcontains('192.168.16.0/24', '192.168.16.3')"); got != 1 {
			t.Errorf("ipcontains() = %d, want 1", got)
		}
		if got := db.Int("ipcontains('192.168.16.0/24', '192.168.17.3')"); got != 0 {
			t.Errorf("ipcontains() = %d, want 0", got)
		}
		if got := db.Int("ipcontains('192.168.16.0/24', '192.168.0.0/16')"); got != 0 {
			t.Errorf("ipcontains() wider prefix = %d, want 0", got)
		}
	})

	t.Run("ipnetwork", func(t *testing.T) {
		if got := db.String("ipnetwork('192.168.16.12/24')"); got != "192.168.16.0/24" {
			t.Errorf("ipnetwork() = %q, want %q", got, "192.168.16.0/24")
		}
	})

	t.Run("ipfamily and ipmasklen", func(t *testing.T) {
		if got := db.Int("ipfamily('2001:db8::1')"); got != 6 {
			t.Errorf("ipfamily() = %d, want 6", got)
		}
		if got := db.Int("ipmasklen('10.0.0.1')"); got != 32 {
			t.Errorf("ipmasklen() = %d, want 32", got)
		}
	})

	t.Run("invalid input fails", func(t *testing.T) {
		if !db.Fails("iphost('not an ip')") {
			t.Error("iphost() expected error for invalid input")
		}
	})
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "1.2.3", "1.2.3.4/33", "::g"} {
		if _, err := parse(s); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("parse(%q) error = %v, want %v", s, err, ErrInvalidAddress)
		}
	}
}
