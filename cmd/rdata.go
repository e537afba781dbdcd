package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
)

var (
	rdataFlags  queryFlags
	rdataOutput outputFlags
)

var rdataCmd = &cobra.Command{
	Use:   "rdata",
	Short: "Search DNS records by the data they point at",
	Long: `Search passive DNS records by their data side: the name, address, or
raw value the record resolves to.`,
}

var rdataNameCmd = &cobra.Command{
	Use:   "name <domain-name>",
	Short: "Search records whose rdata contains a domain name",
	Long: `Search records whose data side contains the given domain name, such as
NS, CNAME, MX, or PTR targets:

  dnsdb rdata name ns5.dnsdb.info
  dnsdb rdata name mx.example.com --rrtype MX`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rdataFlags.options(cmd)
		if err != nil {
			return err
		}
		return runQuery(cmd, &rdataOutput, func(ctx context.Context, client *api.Client) (*api.Stream, error) {
			if rdataFlags.summarize {
				return client.SummarizeRDataName(ctx, args[0], opts...)
			}
			return client.LookupRDataName(ctx, args[0], opts...)
		})
	},
}

var rdataIPCmd = &cobra.Command{
	Use:   "ip <address>",
	Short: "Search records by IP address, CIDR network, or range",
	Long: `Search address records by their value: a single IPv4 or IPv6 address, a
CIDR network, or an inclusive "first-last" range:

  dnsdb rdata ip 104.244.13.104
  dnsdb rdata ip 104.244.13.0/24
  dnsdb rdata ip 2620:11c:f000::-2620:11c:f008::`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rdataFlags.options(cmd)
		if err != nil {
			return err
		}
		return runQuery(cmd, &rdataOutput, func(ctx context.Context, client *api.Client) (*api.Stream, error) {
			if rdataFlags.summarize {
				return client.SummarizeRDataIP(ctx, args[0], opts...)
			}
			return client.LookupRDataIP(ctx, args[0], opts...)
		})
	},
}

var rdataRawCmd = &cobra.Command{
	Use:   "raw <hex>",
	Short: "Search records by raw rdata in hexadecimal wire form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rdataFlags.options(cmd)
		if err != nil {
			return err
		}
		return runQuery(cmd, &rdataOutput, func(ctx context.Context, client *api.Client) (*api.Stream, error) {
			if rdataFlags.summarize {
				return client.SummarizeRDataRaw(ctx, args[0], opts...)
			}
			return client.LookupRDataRaw(ctx, args[0], opts...)
		})
	},
}

func init() {
	rootCmd.AddCommand(rdataCmd)
	for _, sub := range []*cobra.Command{rdataNameCmd, rdataIPCmd, rdataRawCmd} {
		rdataCmd.AddCommand(sub)
		rdataFlags.registerCommon(sub)
		rdataFlags.registerLookup(sub)
		rdataOutput.register(sub)
	}
	// The ip family has no rrtype path segment.
	rdataFlags.registerRRType(rdataNameCmd)
	rdataFlags.registerRRType(rdataRawCmd)
}
