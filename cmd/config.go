package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dnsdb-cli/internal/api"
	"dnsdb-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure DNSDB CLI settings",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <key>",
	Short: "Set the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetAPIKey(args[0]); err != nil {
			return fmt.Errorf("setting API key: %w", err)
		}
		fmt.Println("API key set successfully.")
		return nil
	},
}

var getKeyCmd = &cobra.Command{
	Use:   "get-key",
	Short: "Show the current API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		key := config.GetAPIKey()
		if key == "" {
			fmt.Println("API key is not set.")
			return nil
		}
		fmt.Println(key)
		return nil
	},
}

var setServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Set a non-default API endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetServer(args[0]); err != nil {
			return fmt.Errorf("setting server: %w", err)
		}
		fmt.Println("Server set successfully.")
		return nil
	},
}

var getServerCmd = &cobra.Command{
	Use:   "get-server",
	Short: "Show the configured API endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		server := config.GetServer()
		if server == "" {
			server = api.DefaultServer
		}
		fmt.Println(server)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(getKeyCmd)
	configCmd.AddCommand(setServerCmd)
	configCmd.AddCommand(getServerCmd)
}
