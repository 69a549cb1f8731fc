package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show the password length limits of the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		svc, err := newService()
		if err != nil {
			return err
		}

		limits, err := svc.Limits(ctx)
		if err != nil {
			return fmt.Errorf("fetch limits: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "min password length: %d\nmax password length: %d\n", limits.Min, limits.Max)
		return nil
	},
}
