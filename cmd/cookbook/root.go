package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. The returned context owns the
// logger and log file; release it with execute or close.
func newRootCommand() (*cobra.Command, *commandContext) {
	var configFlag string
	var logFlag string
	var verbose bool
	var quiet bool

	ctx := newCommandContext(&configFlag, &logFlag, &verbose, &quiet)

	rootCmd := &cobra.Command{
		Use:           "cookbook",
		Short:         "Guided cooking sessions in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logFlag, "log-file", "", "File to write logs to (\"stderr\" logs to the console)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable all logging")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newCookCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd, ctx
}

// execute runs the command tree and flushes the log afterwards, also when
// the command fails.
func execute(cmd *cobra.Command, ctx *commandContext) error {
	defer ctx.close()
	return cmd.Execute()
}
