package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/studyflash/internal/srs"
)

func newSessionSizeCmd() *cobra.Command {
	var due, preference, maxSize int
	cmd := &cobra.Command{
		Use:   "session-size",
		Short: "Print the recommended number of cards for a study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size := srs.CalculateOptimalSessionSize(due, preference, maxSize)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), size)
			return err
		},
	}
	cmd.Flags().IntVar(&due, "due", 0, "cards currently due")
	cmd.Flags().IntVar(&preference, "preference", srs.DefaultSessionPreference, "preferred session size")
	cmd.Flags().IntVar(&maxSize, "max", srs.DefaultSessionMax, "largest recommended session")
	return cmd
}
