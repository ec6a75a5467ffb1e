package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/homevolt/homevolt/config"
	"github.com/homevolt/homevolt/core/usage"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Print the latest-day usage snapshot from the log",
	RunE:  runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)
}

func runUsage(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	snap, err := usage.NewReader(cfg.Usage.LogPath).Latest(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
