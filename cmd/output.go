package cmd

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
)

// outputFlags selects where and how query results are written.
type outputFlags struct {
	format  string
	outFile string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.format, "output", "o", "json", "Output format: json, csv, text")
	f.StringVarP(&o.outFile, "file", "f", "", "Write results to this file instead of stdout")
}

// check rejects an unknown output format before a query is issued.
func (o *outputFlags) check() error {
	switch strings.ToLower(o.format) {
	case "json", "csv", "text":
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.format)
}

var csvHeader = []string{
	"count", "num_results", "time_first", "time_last",
	"zone_time_first", "zone_time_last",
	"rrname", "rrtype", "bailiwick", "rdata", "raw_rdata",
}

func recordRow(r *api.Record) []string {
	return []string{
		r.Count.String(), r.NumResults.String(),
		r.TimeFirst.String(), r.TimeLast.String(),
		r.ZoneTimeFirst.String(), r.ZoneTimeLast.String(),
		r.RRName, r.RRType, r.Bailiwick, r.RData.String(), r.RawRData,
	}
}

// writeStream drains the result stream into w in the chosen format.
// Rows written before a stream error stay written; the error comes
// back for reporting after the fact, so a limited or failed query
// still delivers its partial results.
func writeStream(stream *api.Stream, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "json":
		bw := bufio.NewWriter(w)
		for stream.Next() {
			fmt.Fprintf(bw, "%s\n", stream.Bytes())
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	case "csv":
		cw := csv.NewWriter(w)
		cw.Write(csvHeader)
		for stream.Next() {
			var rec api.Record
			if err := stream.Scan(&rec); err != nil {
				return err
			}
			cw.Write(recordRow(&rec))
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
	case "text":
		bw := bufio.NewWriter(w)
		for stream.Next() {
			var rec api.Record
			if err := stream.Scan(&rec); err != nil {
				return err
			}
			fmt.Fprintln(bw, strings.Join(recordRow(&rec), "\t"))
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return stream.Err()
}

// runQuery wires one search call end to end: client construction, the
// query itself, and result output to stdout or the chosen file.
func runQuery(cmd *cobra.Command, out *outputFlags, query func(context.Context, *api.Client) (*api.Stream, error)) error {
	if err := out.check(); err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	stream, err := query(cmd.Context(), client)
	if err != nil {
		return err
	}
	defer stream.Close()

	w := io.Writer(os.Stdout)
	if out.outFile != "" {
		file, err := os.Create(out.outFile)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	return writeStream(stream, out.format, w)
}
