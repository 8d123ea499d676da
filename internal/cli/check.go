package cli

import (
	"context"
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/logger"
	"github.com/kyson-dev/profile-upgrader/internal/render"
	"github.com/kyson-dev/profile-upgrader/internal/store"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var (
		from   string
		output string
		stores storeFlags
	)

	cmd := &cobra.Command{
		Use:   "check <profile>",
		Short: "Migrate in memory and check the result loads as a sing-box config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			logger.Info("Check profile.....", "path", input)

			// 只在内存里迁移，不写回
			out, _, err := loadAndMigrate(input, from, &stores)
			if err != nil {
				logger.Error("Profile check failed", "error", err)
				return err
			}

			opts, err := render.Build(out)
			if err != nil {
				logger.Error("Profile check failed", "error", err)
				return err
			}
			data, err := render.Marshal(opts)
			if err != nil {
				return err
			}
			loaded, err := render.Load(context.Background(), data)
			if err != nil {
				logger.Error("Rendered config rejected", "error", err)
				return err
			}

			if output != "" {
				if err := store.WriteFileAtomic(output, data); err != nil {
					return err
				}
			}

			summary := render.Summarize(loaded)
			logger.Info("Profile is valid", "inbounds", summary.Inbounds, "outbounds", summary.Outbounds)
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Recorded profile version (default: detect from document)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the rendered sing-box config to this path")
	stores.bind(cmd)

	return cmd
}
