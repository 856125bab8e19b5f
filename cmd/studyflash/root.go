package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "studyflash",
		Short: "Flashcard study service with SM-2 spaced repetition",
		Long: `studyflash schedules flashcard reviews with the SM-2 algorithm.

Run "studyflash serve" to start the HTTP API, or use the offline
commands to see how the scheduler reacts to a series of answers.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newPreviewCmd(), newSessionSizeCmd())
	return root
}
