package cmd

import (
	"fmt"

	"github.com/extremtechniker/gokey/secret"
	"github.com/spf13/cobra"
)

const minKeyLength = 32

func KeygenCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Print a new random secret key suitable for SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < minKeyLength {
				return fmt.Errorf("length must be at least %d, got %d", minKeyLength, length)
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret.RandomString(length, secret.Alphabet))
			return nil
		},
	}

	cmd.Flags().IntVar(&length, "length", secret.DefaultLength, "Key length in characters")
	return cmd
}
