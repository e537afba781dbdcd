package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
	"dnsdb-cli/internal/config"
)

var (
	rootServer   string
	rootAPIKey   string
	rootDebug    bool
	rootInsecure bool
	rootProxy    string
)

var rootCmd = &cobra.Command{
	Use:   "dnsdb",
	Short: "DNSDB CLI - A command line interface for the DNSDB passive DNS API",
	Long: `DNSDB CLI queries the DNSDB API v2 for passive DNS history: which DNS
records have been observed for a name, which names pointed at an IP,
and flexible regex or glob searches over the whole database.

An API key is required. Configure it once with
'dnsdb config set-key <YOUR_API_KEY>' or set DNSDB_API_KEY in the
environment.`,
	Version:       api.DefaultVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(config.InitConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootServer, "server", "", "API endpoint (default "+api.DefaultServer+")")
	pf.StringVar(&rootAPIKey, "api-key", "", "API key (overrides config file and environment)")
	pf.BoolVar(&rootDebug, "debug", false, "Log query lifecycle events to stderr")
	pf.BoolVar(&rootInsecure, "insecure", false, "Skip TLS certificate verification")
	pf.StringVar(&rootProxy, "proxy", "", "Proxy URL for all requests")
}

// newClient builds the API client from flags, environment, and the
// config file, in that order of precedence.
func newClient() (*api.Client, error) {
	apikey := rootAPIKey
	if apikey == "" {
		apikey = config.GetAPIKey()
	}
	if apikey == "" {
		return nil, fmt.Errorf("no API key configured; run 'dnsdb config set-key <YOUR_API_KEY>' or set DNSDB_API_KEY")
	}

	var opts []api.ClientOption
	server := rootServer
	if server == "" {
		server = config.GetServer()
	}
	if server != "" {
		opts = append(opts, api.WithServer(server))
	}
	if rootInsecure {
		opts = append(opts, api.WithInsecure())
	}
	if rootProxy != "" {
		opts = append(opts, api.WithProxy(rootProxy))
	}
	if rootDebug {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, api.WithLogger(slog.New(handler)))
	}
	return api.NewClient(apikey, opts...), nil
}
