package cmd

import (
	"fmt"
	"time"

	"github.com/extremtechniker/gokey/logger"
	"github.com/extremtechniker/gokey/secret"
	"github.com/extremtechniker/gokey/token"
	"github.com/spf13/cobra"
)

func TokenCommand() *cobra.Command {
	var ttl string
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a JWT token for HTTP API authentication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expDuration := token.DefaultTTL
			if ttl != "" {
				var err error
				expDuration, err = time.ParseDuration(ttl)
				if err != nil {
					return fmt.Errorf("invalid ttl format: %w", err)
				}
				if expDuration <= 0 {
					return fmt.Errorf("ttl must be positive, got %s", ttl)
				}
			}

			tokenString, err := issueToken(secret.Process(), subject, expDuration)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Bearer "+tokenString)
			return nil
		},
	}

	cmd.Flags().StringVar(&ttl, "ttl", "", "Optional token TTL duration (e.g., 2h, 30m)")
	cmd.Flags().StringVar(&subject, "sub", "gokey-api", "Token subject")

	return cmd
}

func issueToken(key secret.Key, subject string, ttl time.Duration) (string, error) {
	if key.Source == secret.SourceGenerated {
		logger.Logger.Warnf("%s is not set; this token only verifies against this process and is useless elsewhere", secret.EnvSecretKey)
	}
	return token.Issue(token.SigningKey(key), subject, ttl)
}
