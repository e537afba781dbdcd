// Package dnsutil validates DNS RRtype mnemonics before they reach a
// query path.
package dnsutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// anyDNSSEC is the service's extension mnemonic covering the DNSSEC
// record types as a group.
const anyDNSSEC = "ANY-DNSSEC"

// CheckRRType reports whether s is a known RRtype mnemonic, an RFC
// 3597 TYPEnnn form, or one of the service's ANY pseudo-types. The
// check is case-insensitive.
func CheckRRType(s string) error {
	u := strings.ToUpper(s)
	if u == anyDNSSEC {
		return nil
	}
	if _, ok := dns.StringToType[u]; ok {
		return nil
	}
	if rest, ok := strings.CutPrefix(u, "TYPE"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n <= 65535 {
			return nil
		}
	}
	return fmt.Errorf("unknown RRtype mnemonic %q", s)
}
