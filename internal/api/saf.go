package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Streaming Application Framework condition tags. Each response line
// may carry one; a line without a tag is treated like "ongoing".
const (
	condBegin     = "begin"
	condOngoing   = "ongoing"
	condSucceeded = "succeeded"
	condLimited   = "limited"
	condFailed    = "failed"
)

// safEnvelope is one decoded response line: an optional condition tag,
// an optional result payload, and an optional server message.
type safEnvelope struct {
	Cond string          `json:"cond"`
	Obj  json.RawMessage `json:"obj"`
	Msg  string          `json:"msg"`
}

const (
	// Responses with large rrsets produce very long lines; give the
	// scanner generous room before declaring the stream malformed.
	maxLineBytes     = 16 << 20
	initialLineBytes = 64 << 10
)

// Stream is a lazily decoded sequence of result objects from one
// query. Iterate in the database/sql style:
//
//	res, err := client.LookupRRSet(ctx, "www.dnsdb.info")
//	if err != nil {
//		return err
//	}
//	defer res.Close()
//	for res.Next() {
//		var row map[string]any
//		if err := res.Scan(&row); err != nil {
//			return err
//		}
//	}
//	if err := res.Err(); err != nil {
//		return err
//	}
//
// A Stream is single-pass and not safe for concurrent use. The
// underlying response body is released exactly once: automatically
// when Next returns false, or through Close when the caller stops
// early. Lines are read and decoded on demand, so an abandoned Stream
// costs no further parsing.
type Stream struct {
	body          io.Closer
	scanner       *bufio.Scanner
	ignoreLimited bool
	logger        *slog.Logger

	// playback mode serves pre-seeded objects with no body; used by
	// the Mock client.
	playback []json.RawMessage
	terminal error

	cur      json.RawMessage
	count    int
	err      error
	pending  error
	deferred bool
	done     bool

	closeOnce sync.Once
	closeErr  error
}

// newStream wraps a live NDJSON response body.
func newStream(body io.ReadCloser, ignoreLimited bool, logger *slog.Logger) *Stream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, initialLineBytes), maxLineBytes)
	return &Stream{
		body:          body,
		scanner:       sc,
		ignoreLimited: ignoreLimited,
		logger:        logger,
	}
}

// newPlaybackStream serves objs in order and then ends with terminal
// (nil meaning success). The decoder is bypassed entirely.
func newPlaybackStream(objs []json.RawMessage, terminal error) *Stream {
	return &Stream{
		playback: objs,
		terminal: terminal,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// Next advances to the next result object, returning false when the
// stream is exhausted for any reason. Consult Err afterwards to tell
// success from failure.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	if s.deferred {
		// The terminal condition arrived on the same line as the last
		// object; surface it now that the object has been consumed.
		s.finish(s.pending)
		return false
	}
	if s.scanner == nil {
		return s.nextPlayback()
	}

	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var env safEnvelope
		if err := json.Unmarshal(line, &env); err != nil {
			s.finish(fmt.Errorf("%w: could not decode json: %s", ErrProtocol, line))
			return false
		}
		switch env.Cond {
		case condBegin:
			// Inert marker; any payload on it is discarded.
			continue
		case condSucceeded:
			s.finish(nil)
			return false
		}

		hasObj := len(env.Obj) > 0 && !bytes.Equal(env.Obj, []byte("null"))
		var terminal error
		stop := false
		switch env.Cond {
		case condOngoing, "":
		case condLimited:
			stop = true
			if !s.ignoreLimited {
				terminal = wrapMsg(ErrQueryLimited, env.Msg)
			}
		case condFailed:
			stop = true
			terminal = wrapMsg(ErrQueryFailed, env.Msg)
		default:
			stop = true
			terminal = fmt.Errorf("%w: invalid cond: %q", ErrProtocol, env.Cond)
		}

		if !stop {
			if hasObj {
				s.yield(env.Obj)
				return true
			}
			continue
		}
		if hasObj {
			// The payload is delivered before the terminal state so no
			// data is lost when the server ends the stream abruptly.
			s.yield(env.Obj)
			s.pending = terminal
			s.deferred = true
			return true
		}
		s.finish(terminal)
		return false
	}

	if err := s.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.finish(fmt.Errorf("%w: response line longer than %d bytes: %w", ErrProtocol, maxLineBytes, err))
		} else {
			s.finish(fmt.Errorf("%w: reading stream: %w", ErrQuery, err))
		}
		return false
	}
	s.finish(ErrQueryTruncated)
	return false
}

func (s *Stream) nextPlayback() bool {
	if len(s.playback) == 0 {
		s.finish(s.terminal)
		return false
	}
	s.yield(s.playback[0])
	s.playback = s.playback[1:]
	return true
}

func (s *Stream) yield(obj json.RawMessage) {
	s.cur = obj
	s.count++
}

// finish records the terminal state and releases the stream.
func (s *Stream) finish(err error) {
	s.done = true
	s.err = err
	s.cur = nil
	s.release()
}

// Bytes returns the current result object as raw JSON. It is valid
// until the next call to Next.
func (s *Stream) Bytes() json.RawMessage { return s.cur }

// Scan unmarshals the current result object into v.
func (s *Stream) Scan(v any) error {
	if s.cur == nil {
		return errors.New("dnsdb: Scan called without a current result")
	}
	return json.Unmarshal(s.cur, v)
}

// Err reports the terminal error. It is nil while results remain, when
// the stream ended with the server's succeeded condition, and after an
// early Close.
func (s *Stream) Err() error { return s.err }

// Close releases the underlying response body and stops iteration. It
// may be called any number of times, including after Next has already
// finished the stream; the body is closed exactly once.
func (s *Stream) Close() error {
	s.done = true
	s.release()
	return s.closeErr
}

// release closes the response body and emits the lifecycle event,
// exactly once however the stream ends: terminal condition, decode
// error, or early abandonment through Close.
func (s *Stream) release() {
	s.closeOnce.Do(func() {
		if s.body != nil {
			s.closeErr = s.body.Close()
		}
		s.logger.Debug("safQueryDone",
			slog.Int("results", s.count), slog.Any("err", s.err))
	})
}
