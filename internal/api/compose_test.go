package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"www.dnsdb.info", "www.dnsdb.info"},
		{"AZaz09-._~", "AZaz09-._~"},
		{"de/f", "de%2Ff"},
		{"ab,c", "ab%2Cc"},
		{"a b", "a%20b"},
		{"*.dnsdb.info", "%2A.dnsdb.info"},
		{"_dmarc.example.com", "_dmarc.example.com"},
		{"10 mx.example.com.", "10%20mx.example.com."},
		{"bü", "b%C3%BC"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, quote(tc.in), "quote(%q)", tc.in)
	}
}

func TestComposeRRSet(t *testing.T) {
	cases := []struct {
		name      string
		method    string
		subject   string
		rrtype    string
		bailiwick string
		want      string
	}{
		{
			name:    "plain",
			method:  methodLookup,
			subject: "www.dnsdb.info",
			want:    "lookup/rrset/name/www.dnsdb.info",
		},
		{
			name:    "summarize",
			method:  methodSummarize,
			subject: "www.dnsdb.info",
			want:    "summarize/rrset/name/www.dnsdb.info",
		},
		{
			name:    "trailing dot",
			method:  methodLookup,
			subject: "www.dnsdb.info.",
			want:    "lookup/rrset/name/www.dnsdb.info.",
		},
		{
			name:    "rrtype",
			method:  methodLookup,
			subject: "www.dnsdb.info",
			rrtype:  "NS",
			want:    "lookup/rrset/name/www.dnsdb.info/NS",
		},
		{
			name:      "bailiwick fills in ANY",
			method:    methodLookup,
			subject:   "www.dnsdb.info",
			bailiwick: "dnsdb.info",
			want:      "lookup/rrset/name/www.dnsdb.info/ANY/dnsdb.info",
		},
		{
			name:      "rrtype and bailiwick",
			method:    methodLookup,
			subject:   "www.dnsdb.info",
			rrtype:    "NS",
			bailiwick: "dnsdb.info",
			want:      "lookup/rrset/name/www.dnsdb.info/NS/dnsdb.info",
		},
		{
			name:    "left wildcard",
			method:  methodLookup,
			subject: "*.dnsdb.info",
			want:    "lookup/rrset/name/%2A.dnsdb.info",
		},
		{
			name:    "right wildcard",
			method:  methodLookup,
			subject: "www.dnsdb.*",
			want:    "lookup/rrset/name/www.dnsdb.%2A",
		},
		{
			name:    "slash is encoded not a separator",
			method:  methodLookup,
			subject: "de/f.example.com",
			want:    "lookup/rrset/name/de%2Ff.example.com",
		},
		{
			name:    "unicode owner name",
			method:  methodLookup,
			subject: "www.bücher.example",
			want:    "lookup/rrset/name/www.xn--bcher-kva.example",
		},
		{
			name:    "uppercase is mapped down",
			method:  methodLookup,
			subject: "WWW.DNSDB.INFO",
			want:    "lookup/rrset/name/www.dnsdb.info",
		},
		{
			name:      "unicode bailiwick",
			method:    methodLookup,
			subject:   "www.bücher.example",
			rrtype:    "A",
			bailiwick: "bücher.example",
			want:      "lookup/rrset/name/www.xn--bcher-kva.example/A/xn--bcher-kva.example",
		},
		{
			name:    "underscore label survives",
			method:  methodLookup,
			subject: "_dmarc.example.com",
			want:    "lookup/rrset/name/_dmarc.example.com",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := searchRequest{
				method:  tc.method,
				family:  familyRRSet,
				subject: tc.subject,
				opts:    queryOpts{rrtype: tc.rrtype, bailiwick: tc.bailiwick},
			}
			path, err := req.compose()
			require.NoError(t, err)
			assert.Equal(t, tc.want, path)
		})
	}
}

func TestComposeRDataName(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		rrtype  string
		want    string
	}{
		{
			name:    "plain",
			subject: "ns5.dnsdb.info",
			want:    "lookup/rdata/name/ns5.dnsdb.info",
		},
		{
			name:    "rrtype",
			subject: "ns5.dnsdb.info",
			rrtype:  "NS",
			want:    "lookup/rdata/name/ns5.dnsdb.info/NS",
		},
		{
			name:    "unicode",
			subject: "mx.bücher.example",
			rrtype:  "MX",
			want:    "lookup/rdata/name/mx.xn--bcher-kva.example/MX",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := searchRequest{
				method:  methodLookup,
				family:  familyRDataName,
				subject: tc.subject,
				opts:    queryOpts{rrtype: tc.rrtype},
			}
			path, err := req.compose()
			require.NoError(t, err)
			assert.Equal(t, tc.want, path)
		})
	}
}

func TestComposeRDataIP(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		want    string
	}{
		{
			name:    "single v4",
			subject: "104.244.13.104",
			want:    "lookup/rdata/ip/104.244.13.104",
		},
		{
			name:    "cidr slash becomes comma",
			subject: "104.244.13.0/24",
			want:    "lookup/rdata/ip/104.244.13.0,24",
		},
		{
			name:    "range passes through",
			subject: "192.0.2.1-192.0.2.9",
			want:    "lookup/rdata/ip/192.0.2.1-192.0.2.9",
		},
		{
			name:    "v6 colons pass through",
			subject: "2620:11c:f000::",
			want:    "lookup/rdata/ip/2620:11c:f000::",
		},
		{
			name:    "v6 cidr",
			subject: "2620:11c:f000::/48",
			want:    "lookup/rdata/ip/2620:11c:f000::,48",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := searchRequest{method: methodLookup, family: familyRDataIP, subject: tc.subject}
			path, err := req.compose()
			require.NoError(t, err)
			assert.Equal(t, tc.want, path)
		})
	}
}

func TestComposeRDataRaw(t *testing.T) {
	req := searchRequest{method: methodLookup, family: familyRDataRaw, subject: "0b0102030405"}
	path, err := req.compose()
	require.NoError(t, err)
	assert.Equal(t, "lookup/rdata/raw/0b0102030405", path)

	req.opts.rrtype = "NS"
	path, err = req.compose()
	require.NoError(t, err)
	assert.Equal(t, "lookup/rdata/raw/0b0102030405/NS", path)
}

func TestComposeFlex(t *testing.T) {
	cases := []struct {
		name       string
		flexMethod string
		flexKey    string
		subject    string
		rrtype     string
		want       string
	}{
		{
			name:       "regex rrnames",
			flexMethod: "regex",
			flexKey:    keyRRNames,
			subject:    `\._dkim\.`,
			want:       `regex/rrnames/%5C._dkim%5C.`,
		},
		{
			name:       "glob rdata",
			flexMethod: "glob",
			flexKey:    keyRData,
			subject:    "*.farsightsecurity.com",
			want:       "glob/rdata/%2A.farsightsecurity.com",
		},
		{
			name:       "rrtype segment",
			flexMethod: "regex",
			flexKey:    keyRData,
			subject:    "farsight",
			rrtype:     "TXT",
			want:       "regex/rdata/farsight/TXT",
		},
		{
			name:       "pattern is not a domain name",
			flexMethod: "glob",
			flexKey:    keyRRNames,
			subject:    "*.bücher.*",
			want:       "glob/rrnames/%2A.b%C3%BCcher.%2A",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := searchRequest{
				family:     familyFlex,
				subject:    tc.subject,
				flexMethod: tc.flexMethod,
				flexKey:    tc.flexKey,
				opts:       queryOpts{rrtype: tc.rrtype},
			}
			path, err := req.compose()
			require.NoError(t, err)
			assert.Equal(t, tc.want, path)
		})
	}
}
