// Package uuid registers RFC 4122 / RFC 9562 UUID generation and conversion.
package uuid

import (
	guuid "github.com/google/uuid"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// Init registers the uuid functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Volatile("uuid4", guuid.NewString),
		sqlfn.Volatile("gen_random_uuid", guuid.NewString),
		sqlfn.Volatile("uuid7", newV7),
		sqlfn.Scalar("uuid_str", toString),
		sqlfn.Scalar("uuid_blob", toBlob),
	)
}

func newV7() (string, error) {
	u, err := guuid.NewV7()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// parse accepts the textual forms understood by guuid.Parse or a 16-byte blob.
func parse(v any) (guuid.UUID, bool) {
	switch x := v.(type) {
	case string:
		u, err := guuid.Parse(x)
		return u, err == nil
	case []byte:
		if len(x) == 16 {
			u, err := guuid.FromBytes(x)
			return u, err == nil
		}
		u, err := guuid.ParseBytes(x)
		return u, err == nil
	default:
		return guuid.UUID{}, false
	}
}

// toString returns the canonical form of a UUID, or NULL if v is not one.
func toString(v any) any {
	u, ok := parse(v)
	if !ok {
		return nil
	}
	return u.String()
}

// toBlob returns the 16-byte form of a UUID, or NULL if v is not one.
func toBlob(v any) []byte {
	u, ok := parse(v)
	if !ok {
		return nil
	}
	return u[:]
}
