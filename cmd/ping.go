package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity and authentication with the API endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ping ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
