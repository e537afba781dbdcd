package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
)

var (
	flexFlags  queryFlags
	flexOutput outputFlags
	flexKey    string
)

var flexCmd = &cobra.Command{
	Use:   "flex",
	Short: "Flexible pattern search over names or record data",
	Long: `Flexible search matches a pattern against every record owner name
(--key rrnames) or every record data value (--key rdata).`,
}

var flexRegexCmd = &cobra.Command{
	Use:   "regex <pattern>",
	Short: "Search with a regular expression",
	Long: `Search with a regular expression:

  dnsdb flex regex '\._dkim\.' --key rrnames
  dnsdb flex regex 'farsight' --key rdata --exclude 'security'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlex(cmd, "regex", args[0])
	},
}

var flexGlobCmd = &cobra.Command{
	Use:   "glob <pattern>",
	Short: "Search with a glob pattern",
	Long: `Search with a full wildcard glob:

  dnsdb flex glob '*._dkim.*' --key rrnames
  dnsdb flex glob '*farsight*' --key rdata`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlex(cmd, "glob", args[0])
	},
}

func runFlex(cmd *cobra.Command, method, pattern string) error {
	opts, err := flexFlags.options(cmd)
	if err != nil {
		return err
	}
	return runQuery(cmd, &flexOutput, func(ctx context.Context, client *api.Client) (*api.Stream, error) {
		switch {
		case method == "regex" && flexKey == "rrnames":
			return client.FlexRRNamesRegex(ctx, pattern, opts...)
		case method == "regex" && flexKey == "rdata":
			return client.FlexRDataRegex(ctx, pattern, opts...)
		case method == "glob" && flexKey == "rrnames":
			return client.FlexRRNamesGlob(ctx, pattern, opts...)
		case method == "glob" && flexKey == "rdata":
			return client.FlexRDataGlob(ctx, pattern, opts...)
		}
		return nil, fmt.Errorf("unknown search key %q (want rrnames or rdata)", flexKey)
	})
}

func init() {
	rootCmd.AddCommand(flexCmd)
	for _, sub := range []*cobra.Command{flexRegexCmd, flexGlobCmd} {
		flexCmd.AddCommand(sub)
		sub.Flags().StringVarP(&flexKey, "key", "k", "rrnames", "What to match: rrnames or rdata")
		flexFlags.registerCommon(sub)
		flexFlags.registerRRType(sub)
		flexFlags.registerFlex(sub)
		flexOutput.register(sub)
	}
}
