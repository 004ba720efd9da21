package cmd

import (
	"fmt"

	"github.com/extremtechniker/gokey/logger"
	"github.com/extremtechniker/gokey/secret"
	"github.com/spf13/cobra"
)

func KeySourceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "key-source",
		Short: "Show where the secret key comes from and its fingerprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := secret.Process()
			if key.Source == secret.SourceGenerated {
				logger.Logger.Warnf("no secret key configured; set one of %v", secret.DefaultEnvNames)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source=%s env=%s fingerprint=%s\n", key.Source, key.EnvName, key.Fingerprint())
			return nil
		},
	}
}
