package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	causalproof "github.com/agentledger/causalproof"
	"github.com/agentledger/causalproof/internal/logging"
)

func newKeygenCommand(opts *RootOptions) *cobra.Command {
	var privOut, pubOut string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new secp256k1 keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			var priv, pub string
			err := logging.Track(opts.logger, opts.env(), "keygen", func(fields *logging.Fields) error {
				var err error
				priv, err = causalproof.GeneratePrivateKey()
				if err != nil {
					return err
				}
				pub, err = causalproof.PublicKey(priv)
				if err != nil {
					return err
				}
				fields.Add("priv_out", privOut)
				fields.Add("pub_out", pubOut)
				return nil
			})
			if err != nil {
				return err
			}

			if err := writeKeyFile(privOut, priv); err != nil {
				return err
			}
			if err := writeKeyFile(pubOut, pub); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]string{
				"privateKeyPath": privOut,
				"publicKeyPath":  pubOut,
				"publicKey":      pub,
			})
		},
	}

	cmd.Flags().StringVar(&privOut, "priv-out", "causal.key", "output path for the private key")
	cmd.Flags().StringVar(&pubOut, "pub-out", "causal.pub", "output path for the public key")
	return cmd
}
