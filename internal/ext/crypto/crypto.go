// Package crypto registers hashing and binary-to-text encoding functions.
package crypto

import (
	"crypto/md5"  //nolint:gosec // SQL-level digest, not a security primitive
	"crypto/sha1" //nolint:gosec // SQL-level digest, not a security primitive
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// ErrUnknownEncoding is returned by encode/decode for an unsupported format.
var ErrUnknownEncoding = errors.New("crypto: unknown encoding")

// Init registers the crypto functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Scalar("md5", hashFunc(func(b []byte) []byte { s := md5.Sum(b); return s[:] })),
		sqlfn.Scalar("sha1", hashFunc(func(b []byte) []byte { s := sha1.Sum(b); return s[:] })),
		sqlfn.Scalar("sha256", hashFunc(func(b []byte) []byte { s := sha256.Sum256(b); return s[:] })),
		sqlfn.Scalar("sha384", hashFunc(func(b []byte) []byte { s := sha512.Sum384(b); return s[:] })),
		sqlfn.Scalar("sha512", hashFunc(func(b []byte) []byte { s := sha512.Sum512(b); return s[:] })),
		sqlfn.Scalar("sha3_256", hashFunc(func(b []byte) []byte { s := sha3.Sum256(b); return s[:] })),
		sqlfn.Scalar("encode", encode),
		sqlfn.Scalar("decode", decode),
	)
}

// hashFunc adapts a digest to a SQL function. NULL input yields NULL.
func hashFunc(sum func([]byte) []byte) func(any) []byte {
	return func(v any) []byte {
		if sqlfn.IsNull(v) {
			return nil
		}
		return sum(sqlfn.Bytes(v))
	}
}

func encode(v any, format string) (string, error) {
	data := sqlfn.Bytes(v)
	switch strings.ToLower(format) {
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "base32":
		return base32.StdEncoding.EncodeToString(data), nil
	case "hex":
		return hex.EncodeToString(data), nil
	case "url":
		return url.QueryEscape(string(data)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, format)
	}
}

func decode(text string, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case "base64":
		data, err = base64.StdEncoding.DecodeString(text)
	case "base32":
		data, err = base32.StdEncoding.DecodeString(text)
	case "hex":
		data, err = hex.DecodeString(text)
	case "url":
		var s string
		s, err = url.QueryUnescape(text)
		data = []byte(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return data, nil
}
