// Package ipaddr registers IPv4/IPv6 address and prefix functions.
//
// Every function accepts either a bare address ("10.0.0.1") or an address
// with a prefix length ("10.0.0.1/8"). Unparsable input is an SQL error.
package ipaddr

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// ErrInvalidAddress is returned for text that is neither an address nor a prefix.
var ErrInvalidAddress = errors.New("ipaddr: invalid address")

// Init registers the ipaddr functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Scalar("ipfamily", family),
		sqlfn.Scalar("iphost", host),
		sqlfn.Scalar("ipmasklen", maskLen),
		sqlfn.Scalar("ipnetwork", network),
		sqlfn.Scalar("ipcontains", contains),
	)
}

// parse reads an address or prefix. A bare address becomes a host prefix.
func parse(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		return p, nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return netip.PrefixFrom(a, a.BitLen()), nil
}

func family(s string) (int64, error) {
	p, err := parse(s)
	if err != nil {
		return 0, err
	}
	if p.Addr().Is4() {
		return 4, nil
	}
	return 6, nil
}

func host(s string) (string, error) {
	p, err := parse(s)
	if err != nil {
		return "", err
	}
	return p.Addr().String(), nil
}

func maskLen(s string) (int64, error) {
	p, err := parse(s)
	if err != nil {
		return 0, err
	}
	return int64(p.Bits()), nil
}

func network(s string) (string, error) {
	p, err := parse(s)
	if err != nil {
		return "", err
	}
	return p.Masked().String(), nil
}

// contains reports whether ip (an address or a narrower prefix) lies
// entirely within the network.
func contains(network, ip string) (bool, error) {
	n, err := parse(network)
	if err != nil {
		return false, err
	}
	p, err := parse(ip)
	if err != nil {
		return false, err
	}
	n = n.Masked()
	return p.Bits() >= n.Bits() && n.Contains(p.Addr()), nil
}
