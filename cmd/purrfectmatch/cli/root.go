package cli

import (
	"fmt"

	"github.com/kast7n/PurrfectMatchPublic-sub003/internal/config"
	"github.com/kast7n/PurrfectMatchPublic-sub003/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type VersionInfo struct {
	Version string
	Commit  string
}

// cfg se carga en PersistentPreRunE, antes de cualquier subcomando.
var cfg *config.Config

func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "purrfectmatch",
		Short:         "PurrfectMatch catalog service",
		Long:          "Read side of the PurrfectMatch adoption platform: filtered, sorted and paginated listings of pets, shelters, applications and posts.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(viper.GetViper(), path)
			if err != nil {
				return err
			}
			cfg = loaded
			return logger.Init(logger.Options{
				Level:      cfg.Log.Level,
				File:       cfg.Log.File,
				MaxSizeMB:  cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAgeDays: cfg.Log.MaxAgeDays,
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Logger().Sync() // flush buffers al salir
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default is ./config.yaml or ./configs/config.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-file", "", "also write logs to this file, rotated")

	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.file", cmd.PersistentFlags().Lookup("log-file"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}
