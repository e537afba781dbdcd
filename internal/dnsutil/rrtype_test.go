package dnsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRRType(t *testing.T) {
	valid := []string{
		"A", "a", "AAAA", "NS", "CNAME", "MX", "TXT", "PTR", "SOA",
		"DNSKEY", "SVCB", "HTTPS",
		"ANY", "any", "ANY-DNSSEC", "any-dnssec",
		"TYPE0", "TYPE65", "type65", "TYPE65535",
	}
	for _, s := range valid {
		assert.NoError(t, CheckRRType(s), "rrtype %q", s)
	}

	invalid := []string{
		"", "BOGUS", "A ", " A", "A,NS",
		"TYPE", "TYPE-1", "TYPE65536", "TYPE1A", "TYPEE65",
	}
	for _, s := range invalid {
		assert.Error(t, CheckRRType(s), "rrtype %q", s)
	}
}
