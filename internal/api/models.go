package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record is a convenience view of one result row for Stream.Scan.
// The stream itself never interprets results; this type only covers
// the fields shared by the lookup, summarize, and flex families, so
// rows decode cleanly whichever operation produced them. Absent
// fields are left at their zero values.
type Record struct {
	Count         json.Number `json:"count"`
	NumResults    json.Number `json:"num_results"`
	RRName        string      `json:"rrname"`
	RRType        string      `json:"rrtype"`
	Bailiwick     string      `json:"bailiwick"`
	RData         StringList  `json:"rdata"`
	RawRData      string      `json:"raw_rdata"`
	TimeFirst     Time        `json:"time_first"`
	TimeLast      Time        `json:"time_last"`
	ZoneTimeFirst Time        `json:"zone_time_first"`
	ZoneTimeLast  Time        `json:"zone_time_last"`
}

// Time is a result timestamp in whichever form the server sent: Unix
// epoch digits by default, or an RFC 3339 string under humantime.
type Time string

// UnmarshalJSON accepts a JSON number or string.
func (t *Time) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Time(s)
		return nil
	}
	*t = Time(b)
	return nil
}

func (t Time) String() string { return string(t) }

// StringList is a slice of strings that also accepts a single JSON
// string, the shape the flex endpoints use for rdata.
type StringList []string

// UnmarshalJSON accepts a JSON array of strings or one bare string.
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var vs []string
		if err := json.Unmarshal(b, &vs); err != nil {
			return err
		}
		*l = vs
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = StringList{s}
	return nil
}

func (l StringList) String() string { return strings.Join(l, " ") }
