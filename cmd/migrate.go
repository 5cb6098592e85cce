package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/club-budget-server/internal/config"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Apply pending Postgres migrations",
	RunE:         migrateCmdF,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}

func migrateCmdF(cmd *cobra.Command, args []string) error {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}
	logger := logging.SetupLogging(env.LogLevel)

	status, err := storage.RunMigrations(env.PostgresDSN())
	if err != nil {
		logger.WithError(err).Error("storage.RunMigrations")
		return err
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  status.PreMigrationVersion,
		"postMigrationVersion": status.PostMigrationVersion,
	}).Info("Migration status")
	return nil
}
