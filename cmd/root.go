package cmd

import (
	"github.com/extremtechniker/gokey/logger"
	"github.com/extremtechniker/gokey/util"
	"github.com/spf13/cobra"
)

var (
	LogLevel string
	EnvFile  string
)

func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gokey",
		Short:        "Secret key resolution with signed sessions and API tokens",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load before anything reads SECRET_KEY or LOG_FORMAT.
			if err := util.LoadEnvFile(EnvFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				LogLevel = util.MustGetenv("LOG_LEVEL", LogLevel)
			}
			logger.InitLogger(LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&LogLevel, "log-level", "info", "Log level (debug, info, warn, error); defaults to $LOG_LEVEL")
	root.PersistentFlags().StringVar(&EnvFile, "env-file", ".env", "Optional dotenv file; set variables take precedence")
	return root
}
