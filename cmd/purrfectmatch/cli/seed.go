package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/outbound/db/relational"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/infra/outbound/fixtures"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/config"
	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/gormrepo"
	"github.com/kast7n/PurrfectMatchPublic-sub003/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data and sample pets from a fixtures file",
		Long:  "Load reference data and sample pets from a fixtures file. Running it twice leaves the same rows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open fixtures: %w", err)
			}
			defer f.Close()

			fx, err := fixtures.Load(f)
			if err != nil {
				return err
			}
			ds, err := fx.Build(time.Now().UTC())
			if err != nil {
				return err
			}

			db, err := gormrepo.Open(cfg.DB.Driver, cfg.DB.DSN, logger.Logger())
			if err != nil {
				return err
			}
			if err := relational.Migrate(ctx, db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}

			postsInSQL := cfg.Posts.Store == config.PostsStoreSQL
			if err := ds.Apply(ctx, db, postsInSQL); err != nil {
				return err
			}

			if !postsInSQL {
				store, closeFn, err := openPostStore(ctx)
				if err != nil {
					return err
				}
				defer closeFn()
				if err := store.Upsert(ctx, ds.PostPointers()...); err != nil {
					return fmt.Errorf("failed to seed posts: %w", err)
				}
			}

			logger.Logger().Info("🌱 Datos de ejemplo cargados",
				zap.String("file", file),
				zap.Int("pets", len(ds.Pets)),
				zap.Int("posts", len(ds.Posts)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "configs/fixtures.yaml", "fixtures file")

	return cmd
}
