package cli

import (
	"fmt"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/outbound/db/relational"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	"github.com/kast7n/PurrfectMatchPublic-sub003/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the relational schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := gormrepo.Open(cfg.DB.Driver, cfg.DB.DSN, logger.Logger())
			if err != nil {
				return err
			}
			if err := relational.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			logger.Logger().Info("✅ Esquema actualizado", zap.String("driver", cfg.DB.Driver))
			return nil
		},
	}
}
