package cli

import (
	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	var (
		debug   bool
		logFile string
	)

	cmd := &cobra.Command{
		Use:           "profile-upgrader",
		Short:         "Upgrade GUI.for.SingBox profiles to the current schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Setup(logger.Config{Debug: debug, FilePath: logFile})
			return nil
		},
	}

	// bind global flags
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&logFile, "log", "", "Also write logs to this file")

	// register sub commands
	cmd.AddCommand(
		newVersionCommand(),
		newMigrateCommand(),
		newCheckCommand(),
		newDetectCommand(),
	)

	return cmd
}

// execute command
func Execute() error {
	return NewRootCommand().Execute()
}
