package api

import (
	"net/url"
	"strconv"
)

// queryOpts is the assembled form of a call's QueryOption list: the
// secondary query parameters, the two values that become path segments,
// and one flag that only steers the decoder.
type queryOpts struct {
	values        url.Values
	rrtype        string
	bailiwick     string
	ignoreLimited bool
}

func applyQueryOptions(opts []QueryOption) queryOpts {
	qo := queryOpts{values: url.Values{}}
	for _, o := range opts {
		o(&qo)
	}
	return qo
}

// A QueryOption refines a single search call.
type QueryOption func(*queryOpts)

// WithRRType restricts the query to one RRtype mnemonic, for example
// "A", "NS", or "TYPE65". The value becomes a path segment and reaches
// the service verbatim.
func WithRRType(rrtype string) QueryOption {
	return func(o *queryOpts) { o.rrtype = rrtype }
}

// WithBailiwick filters rrset queries by bailiwick, the zone the
// answer was seen under. Other query families ignore it.
func WithBailiwick(bailiwick string) QueryOption {
	return func(o *queryOpts) { o.bailiwick = bailiwick }
}

// WithLimit caps the number of results. Zero asks the service for its
// maximum allowance.
func WithLimit(n int) QueryOption {
	return func(o *queryOpts) { o.values.Set("limit", strconv.Itoa(n)) }
}

// WithOffset skips n rows of the result set, for paging across
// queries. Subject to the API key's offset allowance.
func WithOffset(n int) QueryOption {
	return func(o *queryOpts) { o.values.Set("offset", strconv.Itoa(n)) }
}

// WithTimeFirstBefore selects records first observed before t, a Unix
// timestamp. Negative values are relative to the current time.
func WithTimeFirstBefore(t int64) QueryOption {
	return func(o *queryOpts) { o.values.Set("time_first_before", strconv.FormatInt(t, 10)) }
}

// WithTimeFirstAfter selects records first observed after t.
func WithTimeFirstAfter(t int64) QueryOption {
	return func(o *queryOpts) { o.values.Set("time_first_after", strconv.FormatInt(t, 10)) }
}

// WithTimeLastBefore selects records last observed before t.
func WithTimeLastBefore(t int64) QueryOption {
	return func(o *queryOpts) { o.values.Set("time_last_before", strconv.FormatInt(t, 10)) }
}

// WithTimeLastAfter selects records last observed after t.
func WithTimeLastAfter(t int64) QueryOption {
	return func(o *queryOpts) { o.values.Set("time_last_after", strconv.FormatInt(t, 10)) }
}

// WithAggregation chooses between one row per rrset grouped across
// time (true, the service default) and one row per observation window
// (false).
func WithAggregation(aggr bool) QueryOption {
	return func(o *queryOpts) { o.values.Set("aggr", strconv.FormatBool(aggr)) }
}

// WithHumanTime asks for RFC 3339 time strings instead of Unix
// timestamps in results.
func WithHumanTime(human bool) QueryOption {
	return func(o *queryOpts) { o.values.Set("humantime", strconv.FormatBool(human)) }
}

// WithFlexVerbose set to false drops the count and time fields from
// flex search results, leaving only the matched names or rdata.
func WithFlexVerbose(verbose bool) QueryOption {
	return func(o *queryOpts) { o.values.Set("verbose", strconv.FormatBool(verbose)) }
}

// WithExclude removes flex search results matching the given pattern.
func WithExclude(pattern string) QueryOption {
	return func(o *queryOpts) { o.values.Set("exclude", pattern) }
}

// WithMaxCount stops a summarize query early once the running count
// reaches n.
func WithMaxCount(n int) QueryOption {
	return func(o *queryOpts) { o.values.Set("max_count", strconv.Itoa(n)) }
}

// WithClientID attaches a caller-chosen identity string to the query
// for the service's logs.
func WithClientID(id string) QueryOption {
	return func(o *queryOpts) { o.values.Set("id", id) }
}

// WithParam sets an arbitrary query parameter, overriding any default
// with the same name. Prefer the typed options when one exists.
func WithParam(key, value string) QueryOption {
	return func(o *queryOpts) { o.values.Set(key, value) }
}

// IgnoreLimited makes the result stream treat the server's "limited"
// terminal condition as ordinary success instead of reporting
// ErrQueryLimited. Nothing is added to the request itself.
func IgnoreLimited() QueryOption {
	return func(o *queryOpts) { o.ignoreLimited = true }
}
