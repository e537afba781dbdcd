package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
)

var (
	rrsetFlags  queryFlags
	rrsetOutput outputFlags
)

var rrsetCmd = &cobra.Command{
	Use:   "rrset <owner-name>",
	Short: "Search DNS records by owner name",
	Long: `Search passive DNS records by the name they answer for. The owner name
may use wildcards in the first or last label:

  dnsdb rrset www.dnsdb.info
  dnsdb rrset '*.dnsdb.info' --rrtype NS
  dnsdb rrset 'www.example.*' --bailiwick example.com
  dnsdb rrset www.dnsdb.info --summarize`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rrsetFlags.options(cmd)
		if err != nil {
			return err
		}
		return runQuery(cmd, &rrsetOutput, func(ctx context.Context, client *api.Client) (*api.Stream, error) {
			if rrsetFlags.summarize {
				return client.SummarizeRRSet(ctx, args[0], opts...)
			}
			return client.LookupRRSet(ctx, args[0], opts...)
		})
	},
}

func init() {
	rootCmd.AddCommand(rrsetCmd)
	rrsetFlags.registerCommon(rrsetCmd)
	rrsetFlags.registerRRType(rrsetCmd)
	rrsetFlags.registerLookup(rrsetCmd)
	rrsetCmd.Flags().StringVarP(&rrsetFlags.bailiwick, "bailiwick", "b", "", "Only records seen under this zone")
	rrsetOutput.register(rrsetCmd)
}
