package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	// DefaultServer is the production DNSDB API endpoint.
	DefaultServer = "https://api.dnsdb.info"

	// apiPrefix roots every version 2 operation path.
	apiPrefix = "dnsdb/v2"

	// contentType is the streaming framing requested from the server.
	contentType = "application/x-ndjson"

	// DefaultSWClient and DefaultVersion identify this software to the
	// service on every request.
	DefaultSWClient = "dnsdb-cli"
	DefaultVersion  = "0.1.0"
)

// Service is the operation surface of the DNSDB API v2, implemented by
// both *Client and the in-memory *Mock.
type Service interface {
	LookupRRSet(ctx context.Context, ownerName string, opts ...QueryOption) (*Stream, error)
	SummarizeRRSet(ctx context.Context, ownerName string, opts ...QueryOption) (*Stream, error)
	LookupRDataName(ctx context.Context, name string, opts ...QueryOption) (*Stream, error)
	SummarizeRDataName(ctx context.Context, name string, opts ...QueryOption) (*Stream, error)
	LookupRDataIP(ctx context.Context, ip string, opts ...QueryOption) (*Stream, error)
	SummarizeRDataIP(ctx context.Context, ip string, opts ...QueryOption) (*Stream, error)
	LookupRDataRaw(ctx context.Context, rawRData string, opts ...QueryOption) (*Stream, error)
	SummarizeRDataRaw(ctx context.Context, rawRData string, opts ...QueryOption) (*Stream, error)
	FlexRRNamesRegex(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error)
	FlexRRNamesGlob(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error)
	FlexRDataRegex(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error)
	FlexRDataGlob(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error)
	Ping(ctx context.Context) error
	RateLimit(ctx context.Context) (map[string]any, error)
	Close() error
}

// Client talks to a DNSDB API v2 endpoint. Construct it with
// NewClient; the zero value is not usable. A Client is safe for
// concurrent use, with each query owning its own response stream.
type Client struct {
	apikey   string
	server   string
	swclient string
	version  string
	proxy    string
	insecure bool
	logger   *slog.Logger

	restyClient *resty.Client
}

var _ Service = (*Client)(nil)

// A ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithServer points the client at a non-default API endpoint.
func WithServer(server string) ClientOption {
	return func(c *Client) { c.server = server }
}

// WithSWClient overrides the software name reported to the service.
func WithSWClient(name string) ClientOption {
	return func(c *Client) { c.swclient = name }
}

// WithVersion overrides the software version reported to the service.
func WithVersion(version string) ClientOption {
	return func(c *Client) { c.version = version }
}

// WithProxy routes all requests through the given proxy URL.
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) { c.proxy = proxyURL }
}

// WithInsecure disables TLS certificate verification, for test
// endpoints only.
func WithInsecure() ClientOption {
	return func(c *Client) { c.insecure = true }
}

// WithLogger enables structured logging of query lifecycle events at
// debug level. The default logger discards everything.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a Client that authenticates with apikey.
func NewClient(apikey string, opts ...ClientOption) *Client {
	c := &Client{
		apikey:   apikey,
		server:   DefaultServer,
		swclient: DefaultSWClient,
		version:  DefaultVersion,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.restyClient = resty.New().
		SetBaseURL(c.server).
		SetHeader("Accept", contentType).
		SetHeader("X-Api-Key", c.apikey)
	if c.insecure {
		c.restyClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if c.proxy != "" {
		c.restyClient.SetProxy(c.proxy)
	}
	return c
}

// Close releases idle transport connections held by the client.
func (c *Client) Close() error {
	c.restyClient.GetClient().CloseIdleConnections()
	return nil
}

// LookupRRSet queries DNS records by owner name. The name may use the
// service's wildcard forms, "*.example.com" or "www.example.*", and
// may be a Unicode name, which is converted to its ASCII form.
func (c *Client) LookupRRSet(ctx context.Context, ownerName string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodLookup,
		family:  familyRRSet,
		subject: ownerName,
		opts:    applyQueryOptions(opts),
	})
}

// SummarizeRRSet is LookupRRSet reduced to a single summary row.
func (c *Client) SummarizeRRSet(ctx context.Context, ownerName string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodSummarize,
		family:  familyRRSet,
		subject: ownerName,
		opts:    applyQueryOptions(opts),
	})
}

// LookupRDataName queries DNS records whose rdata contains the given
// domain name, for example the target of NS, CNAME, or MX records.
func (c *Client) LookupRDataName(ctx context.Context, name string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodLookup,
		family:  familyRDataName,
		subject: name,
		opts:    applyQueryOptions(opts),
	})
}

// SummarizeRDataName is LookupRDataName reduced to a single summary
// row.
func (c *Client) SummarizeRDataName(ctx context.Context, name string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodSummarize,
		family:  familyRDataName,
		subject: name,
		opts:    applyQueryOptions(opts),
	})
}

// LookupRDataIP queries DNS records by address value: a single IP, a
// CIDR network like "192.0.2.0/24", or an "addr1-addr2" range.
func (c *Client) LookupRDataIP(ctx context.Context, ip string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodLookup,
		family:  familyRDataIP,
		subject: ip,
		opts:    applyQueryOptions(opts),
	})
}

// SummarizeRDataIP is LookupRDataIP reduced to a single summary row.
func (c *Client) SummarizeRDataIP(ctx context.Context, ip string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodSummarize,
		family:  familyRDataIP,
		subject: ip,
		opts:    applyQueryOptions(opts),
	})
}

// LookupRDataRaw queries DNS records by rdata in raw hexadecimal wire
// form. The value is passed to the service verbatim.
func (c *Client) LookupRDataRaw(ctx context.Context, rawRData string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodLookup,
		family:  familyRDataRaw,
		subject: rawRData,
		opts:    applyQueryOptions(opts),
	})
}

// SummarizeRDataRaw is LookupRDataRaw reduced to a single summary row.
func (c *Client) SummarizeRDataRaw(ctx context.Context, rawRData string, opts ...QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		method:  methodSummarize,
		family:  familyRDataRaw,
		subject: rawRData,
		opts:    applyQueryOptions(opts),
	})
}

// FlexRRNamesRegex searches record owner names with a regular
// expression pattern.
func (c *Client) FlexRRNamesRegex(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return c.flexQuery(ctx, "regex", keyRRNames, pattern, opts)
}

// FlexRRNamesGlob searches record owner names with a glob pattern.
func (c *Client) FlexRRNamesGlob(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return c.flexQuery(ctx, "glob", keyRRNames, pattern, opts)
}

// FlexRDataRegex searches record data with a regular expression
// pattern.
func (c *Client) FlexRDataRegex(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return c.flexQuery(ctx, "regex", keyRData, pattern, opts)
}

// FlexRDataGlob searches record data with a glob pattern.
func (c *Client) FlexRDataGlob(ctx context.Context, pattern string, opts ...QueryOption) (*Stream, error) {
	return c.flexQuery(ctx, "glob", keyRData, pattern, opts)
}

func (c *Client) flexQuery(ctx context.Context, flexMethod, flexKey, pattern string, opts []QueryOption) (*Stream, error) {
	return c.safQuery(ctx, searchRequest{
		family:     familyFlex,
		subject:    pattern,
		flexMethod: flexMethod,
		flexKey:    flexKey,
		opts:       applyQueryOptions(opts),
	})
}

// Ping verifies connectivity and authentication with the endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var body struct {
		Ping string `json:"ping"`
	}
	if err := c.jsonQuery(ctx, "ping", &body); err != nil {
		return err
	}
	if body.Ping != "ok" {
		return fmt.Errorf("%w: unexpected ping response %q", ErrQuery, body.Ping)
	}
	return nil
}

// RateLimit fetches the API key's quota status. Field types in the
// document vary between numbers and strings like "unlimited", so it is
// returned undecoded beyond the top-level structure.
func (c *Client) RateLimit(ctx context.Context) (map[string]any, error) {
	var doc map[string]any
	if err := c.jsonQuery(ctx, "rate_limit", &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// safQuery issues one streaming search and hands the open response
// body to a Stream. The body stays unread here beyond the status line
// and headers.
func (c *Client) safQuery(ctx context.Context, req searchRequest) (*Stream, error) {
	path, err := req.compose()
	if err != nil {
		return nil, err
	}
	logger := c.logger.With(slog.String("spanID", newSpanID()))
	logger.Debug("safQueryStart", slog.String("path", path))

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetQueryParamsFromValues(c.queryValues(req.opts.values)).
		Get("/" + apiPrefix + "/" + path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrQuery, err)
		logger.Debug("safQueryDone", slog.Any("err", err))
		return nil, err
	}
	if err := rawStatusError(resp); err != nil {
		logger.Debug("safQueryDone", slog.Any("err", err))
		return nil, err
	}
	return newStream(resp.RawBody(), req.opts.ignoreLimited, logger), nil
}

// jsonQuery issues one non-streaming request and decodes the JSON
// response into out.
func (c *Client) jsonQuery(ctx context.Context, path string, out any) error {
	logger := c.logger.With(slog.String("spanID", newSpanID()))
	logger.Debug("jsonQueryStart", slog.String("path", path))

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(c.queryValues(nil)).
		Get("/" + apiPrefix + "/" + path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrQuery, err)
		logger.Debug("jsonQueryDone", slog.Any("err", err))
		return err
	}
	if err := errorForStatus(resp.StatusCode(), strings.TrimSpace(resp.String())); err != nil {
		logger.Debug("jsonQueryDone", slog.Any("err", err))
		return err
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		err = fmt.Errorf("%w: decoding response: %w", ErrQuery, err)
		logger.Debug("jsonQueryDone", slog.Any("err", err))
		return err
	}
	logger.Debug("jsonQueryDone")
	return nil
}

// queryValues merges caller parameters over the base identification
// parameters; the caller wins on a key collision.
func (c *Client) queryValues(params url.Values) url.Values {
	merged := url.Values{
		"swclient": []string{c.swclient},
		"version":  []string{c.version},
	}
	for k, vs := range params {
		merged[k] = vs
	}
	return merged
}

// rawStatusError maps an error status on an unparsed response,
// draining the raw body to recover the server's message.
func rawStatusError(resp *resty.Response) error {
	if code := resp.StatusCode(); code >= 200 && code < 300 {
		return nil
	}
	body := resp.RawBody()
	text, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	body.Close()
	return errorForStatus(resp.StatusCode(), strings.TrimSpace(string(text)))
}

// newSpanID returns a time-ordered unique id correlating the log
// events of one query.
func newSpanID() string {
	return uuid.Must(uuid.NewV7()).String()
}
