package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
	"dnsdb-cli/internal/dnsutil"
)

// queryFlags holds the search parameters shared by the query commands.
// Parameters with a server-side default are only transmitted when the
// flag was set explicitly, so the service stays in charge of defaults.
type queryFlags struct {
	rrtype          string
	bailiwick       string
	summarize       bool
	limit           int
	offset          int
	timeFirstBefore int64
	timeFirstAfter  int64
	timeLastBefore  int64
	timeLastAfter   int64
	aggr            bool
	humantime       bool
	maxCount        int
	id              string
	ignoreLimited   bool
	exclude         string
	verbose         bool
}

func (q *queryFlags) registerCommon(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVarP(&q.limit, "limit", "l", 0, "Maximum number of results (0 requests the service maximum)")
	f.IntVar(&q.offset, "offset", 0, "Skip this many rows of the result set")
	f.Int64Var(&q.timeFirstBefore, "time-first-before", 0, "Only records first seen before this Unix timestamp")
	f.Int64Var(&q.timeFirstAfter, "time-first-after", 0, "Only records first seen after this Unix timestamp")
	f.Int64Var(&q.timeLastBefore, "time-last-before", 0, "Only records last seen before this Unix timestamp")
	f.Int64Var(&q.timeLastAfter, "time-last-after", 0, "Only records last seen after this Unix timestamp")
	f.StringVar(&q.id, "id", "", "Client identity string reported to the service")
	f.BoolVar(&q.ignoreLimited, "ignore-limited", false, "Treat a result stream capped by the limit as success")
}

func (q *queryFlags) registerRRType(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&q.rrtype, "rrtype", "t", "", "Restrict results to one RRtype (e.g. A, NS, TYPE65)")
}

func (q *queryFlags) registerLookup(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&q.summarize, "summarize", "s", false, "Return a single summary row instead of full results")
	f.BoolVar(&q.aggr, "aggr", true, "Aggregate identical rrsets across time")
	f.BoolVar(&q.humantime, "humantime", false, "Report times as RFC 3339 strings instead of Unix timestamps")
	f.IntVar(&q.maxCount, "max-count", 0, "Stop summarizing once the count reaches this value")
}

func (q *queryFlags) registerFlex(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&q.exclude, "exclude", "", "Drop results matching this pattern")
	f.BoolVar(&q.verbose, "verbose", true, "Include count and time fields in results")
}

// options translates the parsed flags into query options. Flags left
// at their defaults produce no option, except where zero is a
// meaningful value and presence is detected via Changed.
func (q *queryFlags) options(cmd *cobra.Command) ([]api.QueryOption, error) {
	var opts []api.QueryOption
	set := cmd.Flags().Changed

	if q.rrtype != "" {
		if err := dnsutil.CheckRRType(q.rrtype); err != nil {
			return nil, err
		}
		opts = append(opts, api.WithRRType(q.rrtype))
	}
	if q.bailiwick != "" {
		opts = append(opts, api.WithBailiwick(q.bailiwick))
	}
	if set("limit") {
		opts = append(opts, api.WithLimit(q.limit))
	}
	if set("offset") {
		opts = append(opts, api.WithOffset(q.offset))
	}
	if set("time-first-before") {
		opts = append(opts, api.WithTimeFirstBefore(q.timeFirstBefore))
	}
	if set("time-first-after") {
		opts = append(opts, api.WithTimeFirstAfter(q.timeFirstAfter))
	}
	if set("time-last-before") {
		opts = append(opts, api.WithTimeLastBefore(q.timeLastBefore))
	}
	if set("time-last-after") {
		opts = append(opts, api.WithTimeLastAfter(q.timeLastAfter))
	}
	if set("aggr") {
		opts = append(opts, api.WithAggregation(q.aggr))
	}
	if set("humantime") {
		opts = append(opts, api.WithHumanTime(q.humantime))
	}
	if set("max-count") {
		if !q.summarize {
			return nil, fmt.Errorf("--max-count only applies together with --summarize")
		}
		opts = append(opts, api.WithMaxCount(q.maxCount))
	}
	if q.id != "" {
		opts = append(opts, api.WithClientID(q.id))
	}
	if q.ignoreLimited {
		opts = append(opts, api.IgnoreLimited())
	}
	if q.exclude != "" {
		opts = append(opts, api.WithExclude(q.exclude))
	}
	if set("verbose") {
		opts = append(opts, api.WithFlexVerbose(q.verbose))
	}
	return opts, nil
}
