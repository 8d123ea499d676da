package cli

import (
	"fmt"

	"github.com/kyson-dev/profile-upgrader/internal/profile"
	"github.com/kyson-dev/profile-upgrader/internal/store"
	"github.com/spf13/cobra"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <profile>",
		Short: "Print the schema version a stored profile is in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := store.ReadProfile(args[0])
			if err != nil {
				return err
			}
			version, err := profile.DetectVersion(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
