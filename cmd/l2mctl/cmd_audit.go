package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/settings"
)

func newAuditCmd() *cobra.Command {
	var (
		filterSwitch string
		filterUser   string
		filterType   string
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			logger, err := audit.NewFileLogger(home + "/" + defaultAuditLog)
			if err != nil {
				return err
			}
			defer logger.Close()

			cfg, err := settings.Load()
			if err != nil {
				return err
			}
			if cfg.LogMaxAgeDays > 0 {
				logger.MaxAge = time.Duration(cfg.LogMaxAgeDays) * 24 * time.Hour
			}

			events, err := logger.Query(audit.Filter{
				Switch: filterSwitch,
				User:   filterUser,
				Type:   audit.Type(filterType),
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			for _, e := range events {
				iface := ""
				if e.IfIndex > 0 {
					iface = fmt.Sprintf(" if:%d", e.IfIndex)
				}
				fmt.Printf("%s  %-7s %-22s %s@%s%s  %s\n",
					e.Timestamp.Format("2006-01-02 15:04:05"),
					e.Type, e.Action, e.User, e.Switch, iface, e.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filterSwitch, "switch", "", "filter by switch")
	cmd.Flags().StringVar(&filterUser, "filter-user", "", "filter by user")
	cmd.Flags().StringVar(&filterType, "type", "", "filter by event type")
	cmd.Flags().IntVar(&limit, "limit", 50, "max events")
	return cmd
}
