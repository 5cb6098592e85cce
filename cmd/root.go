package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "club-budget-server",
	Short: "Club budget ledger with receipt scanning",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile == "" {
			// A missing .env is normal outside local development.
			_ = godotenv.Load()
			return nil
		}
		return godotenv.Load(envFile)
	},
}

func init() {
	RootCmd.PersistentFlags().StringP("env-file", "e", "", "Environment file to load before reading configuration.")
}

func Execute() error {
	return RootCmd.Execute()
}

func Run(args []string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}
