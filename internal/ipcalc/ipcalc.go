// Package ipcalc provides the IPv4 address arithmetic behind range
// utilization and breakdown: CIDR normalization, integer bounds, usable
// capacity, and host enumeration.
package ipcalc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"
)

// ErrInvalidCIDR is returned for malformed or non-IPv4 CIDR strings.
var ErrInvalidCIDR = errors.New("invalid IPv4 CIDR")

// ErrInvalidAddress is returned for malformed or non-IPv4 addresses.
var ErrInvalidAddress = errors.New("invalid IPv4 address")

// Network is a parsed IPv4 network with inclusive uint32 bounds.
type Network struct {
	prefix netip.Prefix
	first  uint32 // network address
	last   uint32 // broadcast address
}

// Parse parses an IPv4 CIDR string into a Network. Host bits are allowed in
// the input and zeroed, so "10.0.0.5/24" parses to 10.0.0.0/24.
func Parse(cidr string) (Network, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return Network{}, fmt.Errorf("%w: %q", ErrInvalidCIDR, cidr)
	}
	if !prefix.Addr().Is4() {
		return Network{}, fmt.Errorf("%w: %q is not IPv4", ErrInvalidCIDR, cidr)
	}
	masked := prefix.Masked()
	first := AddrToUint32(masked.Addr())
	size := uint64(1) << (32 - masked.Bits())
	last := first + uint32(size-1)
	return Network{prefix: masked, first: first, last: last}, nil
}

// Normalize validates an IPv4 CIDR and returns it in canonical network form
// (host bits zeroed).
func Normalize(cidr string) (string, error) {
	network, err := Parse(cidr)
	if err != nil {
		return "", err
	}
	return network.String(), nil
}

// ParseAddr parses a dotted-quad IPv4 address into its uint32 value.
func ParseAddr(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return AddrToUint32(addr), nil
}

// AddrToUint32 converts an IPv4 address to a uint32 in network byte order.
func AddrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

// Uint32ToAddr converts a uint32 back to a dotted-quad string.
func Uint32ToAddr(v uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b).String()
}

// String returns the canonical CIDR form of the network.
func (n Network) String() string {
	return n.prefix.String()
}

// Bits returns the prefix length.
func (n Network) Bits() int {
	return n.prefix.Bits()
}

// First returns the network address as a uint32.
func (n Network) First() uint32 {
	return n.first
}

// Last returns the broadcast address as a uint32.
func (n Network) Last() uint32 {
	return n.last
}

// Contains reports whether v falls within [First, Last].
func (n Network) Contains(v uint32) bool {
	return v >= n.first && v <= n.last
}

// NumAddresses returns the total address count including network and
// broadcast.
func (n Network) NumAddresses() uint64 {
	return uint64(1) << (32 - n.prefix.Bits())
}

// UsableCount returns the number of assignable addresses: 1 for /32 (a point
// IP, not a subnet), 2 for /31 (point-to-point convention, no reserved
// network/broadcast), otherwise total minus network and broadcast.
func (n Network) UsableCount() uint64 {
	switch n.prefix.Bits() {
	case 32:
		return 1
	case 31:
		return 2
	}
	return n.NumAddresses() - 2
}

// Hosts returns every address between network and broadcast, exclusive, in
// ascending order. This is standard host enumeration: it yields nothing for
// /31 and /32, which intentionally differs from UsableCount for those
// prefixes. Breakdown free-address listing depends on this exact behavior.
func (n Network) Hosts() []uint32 {
	if n.last-n.first < 2 {
		return nil
	}
	hosts := make([]uint32, 0, n.last-n.first-1)
	for v := n.first + 1; v < n.last; v++ {
		hosts = append(hosts, v)
	}
	return hosts
}
