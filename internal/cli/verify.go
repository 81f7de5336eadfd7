package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	causalproof "github.com/agentledger/causalproof"
	"github.com/agentledger/causalproof/internal/logging"
)

func newVerifyCommand(opts *RootOptions) *cobra.Command {
	var header, agentID, pubKeyPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Decode a proof header and independently verify it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result causalproof.VerificationResult

			err := logging.Track(opts.logger, opts.env(), "verify_proof", func(fields *logging.Fields) error {
				proof, err := causalproof.DecodeHeader(header)
				if err != nil {
					return err
				}
				pub, err := readKeyFile(pubKeyPath)
				if err != nil {
					return err
				}

				result = causalproof.VerifyProof(proof, agentID, pub)
				fields.Add("valid", result.Valid)
				fields.Add("verified_actions", result.VerifiedActions)
				return nil
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "base64 proof header to verify")
	cmd.Flags().StringVar(&agentID, "agent", "", "expected agent identifier")
	cmd.Flags().StringVar(&pubKeyPath, "pub", "causal.pub", "path to the expected public key")
	return cmd
}
