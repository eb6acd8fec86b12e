package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fundvault/fundvaultd/internal/config"
)

var auditLimit int

// auditCmd prints the most recent contributions from the audit trail.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent contributions from the audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if cfg.Audit.Driver == "none" {
			return fmt.Errorf("auditing is disabled in the configuration")
		}

		store, err := openAudit(cmd.Context(), &cfg.Audit)
		if err != nil {
			return fmt.Errorf("open audit store: %w", err)
		}
		defer store.Close()

		contributions, err := store.Contributions(cmd.Context(), auditLimit)
		if err != nil {
			return fmt.Errorf("read contributions: %w", err)
		}
		if len(contributions) == 0 {
			fmt.Println("no contributions recorded")
			return nil
		}
		for _, c := range contributions {
			fmt.Printf("%s  %s  native=%s  reference=%s\n",
				c.CreatedAt.Format("2006-01-02 15:04:05"), c.Funder, c.Native, c.Reference)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "maximum number of entries to show")
}
