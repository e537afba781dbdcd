package api

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

const (
	methodLookup    = "lookup"
	methodSummarize = "summarize"

	keyRRNames = "rrnames"
	keyRData   = "rdata"

	rrtypeANY = "ANY"
)

// family selects the path template and per-field encoding rules for
// one group of search operations.
type family int

const (
	familyRRSet family = iota
	familyRDataName
	familyRDataIP
	familyRDataRaw
	familyFlex
)

// searchRequest carries one query's arguments in raw form. Nothing in
// here is encoded yet; compose applies IDNA and percent-encoding in a
// single place.
type searchRequest struct {
	method     string // lookup or summarize; unused by flex
	family     family
	subject    string
	flexMethod string // regex or glob
	flexKey    string // rrnames or rdata
	opts       queryOpts
}

// idnaProfile converts Unicode domain names to ASCII. STD3 rules stay
// off so underscore labels and the service's wildcard forms
// ("*.example.com", "www.example.*") pass through as literal text.
var idnaProfile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false))

// quote percent-encodes one path segment with no characters treated as
// safe: slashes, commas, spaces, and all other reserved bytes are
// escaped so the value cannot be confused with path structure.
func quote(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// compose renders the operation path, relative to the API prefix. It
// fails only when a domain-name subject cannot be converted to ASCII.
func (r *searchRequest) compose() (string, error) {
	switch r.family {
	case familyRRSet:
		name, err := idnaProfile.ToASCII(r.subject)
		if err != nil {
			return "", fmt.Errorf("owner name %q: %w", r.subject, err)
		}
		path := r.method + "/rrset/name/" + quote(name)
		if r.opts.rrtype != "" {
			path += "/" + r.opts.rrtype
		}
		if r.opts.bailiwick != "" {
			b, err := idnaProfile.ToASCII(r.opts.bailiwick)
			if err != nil {
				return "", fmt.Errorf("bailiwick %q: %w", r.opts.bailiwick, err)
			}
			// The bailiwick segment is only unambiguous in the fourth
			// position, so an absent rrtype is filled in as ANY.
			if r.opts.rrtype == "" {
				path += "/" + rrtypeANY
			}
			path += "/" + quote(b)
		}
		return path, nil

	case familyRDataName:
		name, err := idnaProfile.ToASCII(r.subject)
		if err != nil {
			return "", fmt.Errorf("rdata name %q: %w", r.subject, err)
		}
		path := r.method + "/rdata/name/" + quote(name)
		if r.opts.rrtype != "" {
			path += "/" + r.opts.rrtype
		}
		return path, nil

	case familyRDataIP:
		// A CIDR slash would read as a path separator; the service
		// expects it rewritten to a comma instead of percent-encoded.
		return r.method + "/rdata/ip/" + strings.ReplaceAll(r.subject, "/", ","), nil

	case familyRDataRaw:
		path := r.method + "/rdata/raw/" + r.subject
		if r.opts.rrtype != "" {
			path += "/" + r.opts.rrtype
		}
		return path, nil

	case familyFlex:
		// Patterns are not domain names: percent-encode only.
		path := r.flexMethod + "/" + r.flexKey + "/" + quote(r.subject)
		if r.opts.rrtype != "" {
			path += "/" + r.opts.rrtype
		}
		return path, nil
	}
	return "", fmt.Errorf("unknown query family %d", r.family)
}
