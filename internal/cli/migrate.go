package cli

import (
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/kyson-dev/profile-upgrader/internal/store"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var (
		from    string
		format  string
		output  string
		inPlace bool
		stores  storeFlags
	)

	cmd := &cobra.Command{
		Use:   "migrate <profile>",
		Short: "Migrate a stored profile to the current schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			logger.Info("Migrating profile", "path", input)

			out, doc, err := loadAndMigrate(input, from, &stores)
			if err != nil {
				logger.Error("Migration failed", "path", input, "error", err)
				return err
			}

			target := output
			if inPlace {
				target = input
			}
			data, err := profile.Encode(out, resolveFormat(format, target))
			if err != nil {
				return err
			}

			// 结果写完整后才替换原文件
			if target == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := store.WriteFileAtomic(target, data); err != nil {
				return err
			}
			logger.Info("Profile migrated", "from", doc.Version, "to", profile.VersionCurrent, "path", target)
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated: %s (%s -> %s)\n", target, doc.Version, profile.VersionCurrent)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Recorded profile version (default: detect from document)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml or json (default: from output extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Replace the input file with the migrated profile")
	cmd.MarkFlagsMutuallyExclusive("output", "in-place")
	stores.bind(cmd)

	return cmd
}
