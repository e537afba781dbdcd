package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// Mock is an in-memory Service for tests. Search operations consume
// Results in order and play them back through ordinary Streams, and
// every invocation is recorded in Calls with its arguments as they
// resolved after option application. The zero value is ready to use.
// A Mock is not safe for concurrent use.
type Mock struct {
	// Err, when set, fails every operation immediately.
	Err error

	// PingErr is returned by Ping.
	PingErr error

	// RateLimitResult is returned by RateLimit.
	RateLimitResult map[string]any

	// Results feeds the search operations, one entry per call.
	Results []MockResult

	// Calls records every invocation in order.
	Calls []Call
}

var _ Service = (*Mock)(nil)

// MockResult seeds one search call.
type MockResult struct {
	// Err fails the call itself, before any stream is returned.
	Err error

	// Objs are delivered through the returned Stream.
	Objs []json.RawMessage

	// StreamErr is reported by Stream.Err once Objs are exhausted; nil
	// means the stream ends successfully.
	StreamErr error
}

// Limited seeds a result whose stream ends with ErrQueryLimited, like
// a live query that hit the service's result cap.
func Limited(objs ...json.RawMessage) MockResult {
	return MockResult{Objs: objs, StreamErr: ErrQueryLimited}
}

// Call is one recorded invocation.
type Call struct {
	// Op is the Service method name, for example "LookupRRSet".
	Op string

	// Subject is the owner name, rdata name, IP, raw hex, or pattern.
	Subject string

	// RRType and Bailiwick are the path-segment options as resolved
	// from the call's QueryOptions.
	RRType    string
	Bailiwick string

	// Params are the resolved secondary query parameters.
	Params url.Values

	// IgnoreLimited records whether the call asked for the limited
	// condition to be treated as success.
	IgnoreLimited bool

	// Stream is the stream handed out by a search call, nil when the
	// call failed or was not a search.
	Stream *Stream

	// Err is the error returned by the call itself, nil when a stream
	// was handed out.
	Err error
}

func (m *Mock) search(op, subject string, opts []QueryOption) (*Stream, error) {
	qo := applyQueryOptions(opts)
	stream, err := m.nextResult(qo.ignoreLimited)
	m.Calls = append(m.Calls, Call{
		Op:            op,
		Subject:       subject,
		RRType:        qo.rrtype,
		Bailiwick:     qo.bailiwick,
		Params:        qo.values,
		IgnoreLimited: qo.ignoreLimited,
		Stream:        stream,
		Err:           err,
	})
	return stream, err
}

func (m *Mock) nextResult(ignoreLimited bool) (*Stream, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Results) == 0 {
		return nil, fmt.Errorf("%w: mock has no seeded results", ErrQuery)
	}
	res := m.Results[0]
	m.Results = m.Results[1:]
	if res.Err != nil {
		return nil, res.Err
	}
	terminal := res.StreamErr
	if ignoreLimited && errors.Is(terminal, ErrQueryLimited) {
		terminal = nil
	}
	return newPlaybackStream(res.Objs, terminal), nil
}

// LookupRRSet implements Service.
func (m *Mock) LookupRRSet(_ context.Context, ownerName string, opts ...QueryOption) (*Stream, error) {
	return m.search("LookupRRSet", ownerName, opts)
}

// SummarizeRRSet implements Service.
func (m *Mock) SummarizeRRSet(_ context.Context, ownerName string, opts ...QueryOption) (*Stream, error) {
	return m.search("SummarizeRRSet", ownerName, opts)
}

// LookupRDataName implements Service.
func (m *Mock) LookupRDataName(_ context.Context, name string, opts ...QueryOption) (*Stream, error) {
	return m.search("LookupRDataName", name, opts)
}

// SummarizeRDataName implements Service.
func (m *Mock) SummarizeRDataName(_ context.Context, name string, opts ...QueryOption) (*Stream, error) {
	return m.search("SummarizeRDataName", name, opts)
}

// LookupRDataIP implements Service.
func (m *Mock) LookupRDataIP(_ context.Context, ip string, opts ...QueryOption) (*Stream, error) {
	return m.search("LookupRDataIP", ip, opts)
}

// SummarizeRDataIP implements Service.
func (m *Mock) SummarizeRDataIP(_ context.Context, ip string, opts ...QueryOption) (*Stream, error) {
	return m.search("SummarizeRDataIP", ip, opts)
}

// LookupRDataRaw implements Service.
func (m *Mock) LookupRDataRaw(_ context.Context, rawRData string, opts ...QueryOption) (*Stream, error) {
	return m.search("LookupRDataRaw", rawRData, opts)
}

// SummarizeRDataRaw implements Service.
func (m *Mock) SummarizeRDataRaw(_ context.Context, rawRData string, opts ...QueryOption) (*Stream, error) {
	return m.search("SummarizeRDataRaw", rawRData, opts)
}

// FlexRRNamesRegex implements Service.
func (m *Mock) FlexRRNamesRegex(_ context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return m.search("FlexRRNamesRegex", pattern, opts)
}

// FlexRRNamesGlob implements Service.
func (m *Mock) FlexRRNamesGlob(_ context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return m.search("FlexRRNamesGlob", pattern, opts)
}

// FlexRDataRegex implements Service.
func (m *Mock) FlexRDataRegex(_ context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return m.search("FlexRDataRegex", pattern, opts)
}

// FlexRDataGlob implements Service.
func (m *Mock) FlexRDataGlob(_ context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return m.search("FlexRDataGlob", pattern, opts)
}

// Ping implements Service.
func (m *Mock) Ping(context.Context) error {
	err := m.PingErr
	if m.Err != nil {
		err = m.Err
	}
	m.Calls = append(m.Calls, Call{Op: "Ping", Err: err})
	return err
}

// RateLimit implements Service.
func (m *Mock) RateLimit(context.Context) (map[string]any, error) {
	if m.Err != nil {
		m.Calls = append(m.Calls, Call{Op: "RateLimit", Err: m.Err})
		return nil, m.Err
	}
	m.Calls = append(m.Calls, Call{Op: "RateLimit"})
	return m.RateLimitResult, nil
}

// Close implements Service.
func (m *Mock) Close() error { return nil }
