package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/analytics/clickhouse"
	"github.com/spf13/cobra"
)

func NewStatsCommand() *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-entity query statistics from the query log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ClickHouse.Addr == "" {
				return fmt.Errorf("clickhouse.addr is not configured")
			}
			repo, err := clickhouse.NewQueryLogRepo(cfg.ClickHouse.Addr, cfg.ClickHouse.Database, cfg.ClickHouse.User, cfg.ClickHouse.Password)
			if err != nil {
				return err
			}
			defer repo.Close()

			end := time.Now().UTC()
			stats, err := repo.GetEntityStats(cmd.Context(), end.Add(-since), end)
			if err != nil {
				return fmt.Errorf("failed to read query stats: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ENTITY\tQUERIES\tFAILURES\tAVG")
			for _, s := range stats {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.Entity, s.Queries, s.Failures, s.AvgDuration)
			}
			return w.Flush()
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "time window")

	return cmd
}
