package ipcalc

import (
	"strconv"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.0.0.0/24", "10.0.0.0/24"},
		{"10.0.0.5/24", "10.0.0.0/24"},
		{"192.168.10.17/28", "192.168.10.16/28"},
		{"10.0.0.5/32", "10.0.0.5/32"},
		{"10.0.0.4/31", "10.0.0.4/31"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if err != nil {
			t.Fatalf("Normalize(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_Invalid(t *testing.T) {
	for _, in := range []string{"", "10.0.0.0", "10.0.0.0/33", "300.0.0.0/24", "fd00::/64", "not-a-cidr"} {
		if _, err := Normalize(in); err == nil {
			t.Errorf("Normalize(%q) should fail", in)
		}
	}
}

func TestBounds(t *testing.T) {
	n, err := Parse("192.168.10.0/24")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := Uint32ToAddr(n.First()); got != "192.168.10.0" {
		t.Errorf("First() = %s, want 192.168.10.0", got)
	}
	if got := Uint32ToAddr(n.Last()); got != "192.168.10.255" {
		t.Errorf("Last() = %s, want 192.168.10.255", got)
	}
	if !n.Contains(n.First()) || !n.Contains(n.Last()) {
		t.Error("bounds should be inclusive")
	}
	if n.Contains(n.Last() + 1) {
		t.Error("address past broadcast should not be contained")
	}
}

func TestUsableCount(t *testing.T) {
	tests := []struct {
		cidr string
		want uint64
	}{
		{"10.0.0.0/24", 254},
		{"10.0.0.0/30", 2},
		{"10.0.0.0/16", 65534},
		{"10.0.0.4/31", 2},
		{"10.0.0.5/32", 1},
	}
	for _, tt := range tests {
		n, err := Parse(tt.cidr)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.cidr, err)
		}
		if got := n.UsableCount(); got != tt.want {
			t.Errorf("UsableCount(%s) = %d, want %d", tt.cidr, got, tt.want)
		}
	}
}

func TestUsableCount_StandardPrefixes(t *testing.T) {
	// For every prefix up to /30 the usable count is total minus two.
	for bits := 8; bits <= 30; bits++ {
		n, err := Parse("10.0.0.0/" + strconv.Itoa(bits))
		if err != nil {
			t.Fatalf("Parse(/%d) failed: %v", bits, err)
		}
		if got, want := n.UsableCount(), n.NumAddresses()-2; got != want {
			t.Errorf("UsableCount(/%d) = %d, want %d", bits, got, want)
		}
	}
}

func TestHosts(t *testing.T) {
	n, err := Parse("192.168.20.0/30")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	hosts := n.Hosts()
	if len(hosts) != 2 {
		t.Fatalf("Hosts(/30) returned %d addresses, want 2", len(hosts))
	}
	if got := Uint32ToAddr(hosts[0]); got != "192.168.20.1" {
		t.Errorf("first host = %s, want 192.168.20.1", got)
	}
	if got := Uint32ToAddr(hosts[1]); got != "192.168.20.2" {
		t.Errorf("second host = %s, want 192.168.20.2", got)
	}
}

// Host enumeration stays standard for /31 and /32 even though UsableCount
// special-cases them. Breakdown output depends on this divergence.
func TestHosts_EdgePrefixes(t *testing.T) {
	for _, cidr := range []string{"10.0.0.4/31", "10.0.0.5/32"} {
		n, err := Parse(cidr)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", cidr, err)
		}
		if hosts := n.Hosts(); len(hosts) != 0 {
			t.Errorf("Hosts(%s) returned %d addresses, want 0", cidr, len(hosts))
		}
		if n.UsableCount() == 0 {
			t.Errorf("UsableCount(%s) should stay non-zero", cidr)
		}
	}
}

func TestParseAddr(t *testing.T) {
	v, err := ParseAddr("192.168.10.7")
	if err != nil {
		t.Fatalf("ParseAddr() failed: %v", err)
	}
	if got := Uint32ToAddr(v); got != "192.168.10.7" {
		t.Errorf("round trip = %s, want 192.168.10.7", got)
	}

	for _, in := range []string{"", "192.168.10", "256.0.0.1", "fd00::1"} {
		if _, err := ParseAddr(in); err == nil {
			t.Errorf("ParseAddr(%q) should fail", in)
		}
	}
}

func TestAddrOrdering(t *testing.T) {
	a, _ := ParseAddr("10.0.0.9")
	b, _ := ParseAddr("10.0.0.10")
	if a >= b {
		t.Error("uint32 ordering should be numeric, not lexicographic")
	}
}
