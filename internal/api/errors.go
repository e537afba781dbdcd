package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Every failure surfaced by this package wraps one of the sentinel
// errors below, so callers can classify with errors.Is while still
// seeing the server's message text.
var (
	// ErrAccessDenied means the API key is missing, invalid, expired,
	// or not authorized for the source address. (HTTP 401 or 403.)
	ErrAccessDenied = errors.New("dnsdb: access denied")

	// ErrOffset means the requested offset exceeds the maximum the
	// server allows, or offsets are not permitted for this API key.
	// (HTTP 416.)
	ErrOffset = errors.New("dnsdb: offset not acceptable")

	// ErrQuotaExceeded means a daily, block, or burst quota is
	// exhausted and the query was not accepted. (HTTP 429.)
	ErrQuotaExceeded = errors.New("dnsdb: quota exceeded")

	// ErrConcurrencyExceeded means too many queries are already in
	// flight for this API key. (HTTP 503.)
	ErrConcurrencyExceeded = errors.New("dnsdb: concurrent query limit exceeded")

	// ErrQuery covers transport failures and any response status not
	// mapped to a more specific error. Retry policy is the caller's
	// business.
	ErrQuery = errors.New("dnsdb: query error")

	// ErrQueryFailed means the server reported a failure mid-stream.
	// Results delivered before the failure are valid.
	ErrQueryFailed = errors.New("dnsdb: query failed")

	// ErrQueryLimited means the result limit was reached. Results
	// delivered so far are valid; continue with an offset if the API
	// key permits it.
	ErrQueryLimited = errors.New("dnsdb: query limited")

	// ErrQueryTruncated means the stream ended without a terminal
	// condition. The result set is incomplete.
	ErrQueryTruncated = errors.New("dnsdb: query truncated")

	// ErrProtocol means the server sent a malformed stream line or an
	// unknown condition tag.
	ErrProtocol = errors.New("dnsdb: protocol error")
)

// errorForStatus translates an HTTP status code into the error
// taxonomy. It returns nil for 2xx. A non-empty body becomes part of
// the error message.
func errorForStatus(code int, body string) error {
	var kind error
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrAccessDenied
	case http.StatusRequestedRangeNotSatisfiable:
		kind = ErrOffset
	case http.StatusTooManyRequests:
		kind = ErrQuotaExceeded
	case http.StatusServiceUnavailable:
		kind = ErrConcurrencyExceeded
	default:
		if code >= 200 && code < 300 {
			return nil
		}
		if body == "" {
			return fmt.Errorf("%w: unexpected status %d", ErrQuery, code)
		}
		return fmt.Errorf("%w: unexpected status %d: %s", ErrQuery, code, body)
	}
	if body == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, body)
}

// wrapMsg attaches a server-provided message to a sentinel, or returns
// the sentinel itself when there is none.
func wrapMsg(kind error, msg string) error {
	if msg == "" {
		return kind
	}
	return fmt.Errorf("%w: %s", kind, msg)
}
