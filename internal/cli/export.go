package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every registered event in the snapshot, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "registry.json", "path to the registry snapshot file")
	return cmd
}
