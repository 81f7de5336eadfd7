package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	causalproof "github.com/agentledger/causalproof"
	"github.com/agentledger/causalproof/internal/logging"
)

func newRegisterCommand(opts *RootOptions) *cobra.Command {
	var snapshotPath, actionType, payloadHash, predecessor string
	var timestamp int64

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new causally-linked event",
		RunE: func(cmd *cobra.Command, args []string) error {
			var event *causalproof.StoredEvent

			err := logging.Track(opts.logger, opts.env(), "register_event", func(fields *logging.Fields) error {
				registry, err := openRegistry(snapshotPath, opts.cfg.Agent.AgentID)
				if err != nil {
					return err
				}

				input := causalproof.EventInput{
					AgentID:     opts.cfg.Agent.AgentID,
					ActionType:  causalproof.ActionType(actionType),
					PayloadHash: payloadHash,
					Timestamp:   timestamp,
				}
				if predecessor != "" {
					input.Predecessor = &predecessor
				}

				event, err = registry.RegisterEvent(input)
				if err != nil {
					return err
				}
				fields.Add("causal_event_id", event.CausalEventID)
				fields.Add("position_in_tree", event.PositionInTree)

				return saveSnapshot(snapshotPath, registry.Export())
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(event)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "registry.json", "path to the registry snapshot file")
	cmd.Flags().StringVar(&actionType, "action-type", "", "request|response|error|state_transition")
	cmd.Flags().StringVar(&payloadHash, "payload-hash", "", "0x-prefixed SHA3-256 digest of the payload")
	cmd.Flags().StringVar(&predecessor, "predecessor", "", "0x-prefixed digest of the predecessor event, if any")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "event timestamp in milliseconds since epoch (required)")
	_ = cmd.MarkFlagRequired("timestamp")
	return cmd
}
