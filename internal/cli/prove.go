package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	causalproof "github.com/agentledger/causalproof"
	"github.com/agentledger/causalproof/internal/logging"
)

func newProveCommand(opts *RootOptions) *cobra.Command {
	var snapshotPath, target, privKeyPath string
	var depth int

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Generate a proof for a registered event and print its header encoding",
		RunE: func(cmd *cobra.Command, args []string) error {
			var header string

			err := logging.Track(opts.logger, opts.env(), "generate_proof", func(fields *logging.Fields) error {
				registry, err := openRegistry(snapshotPath, opts.cfg.Agent.AgentID)
				if err != nil {
					return err
				}
				priv, err := readKeyFile(privKeyPath)
				if err != nil {
					return err
				}

				generator := causalproof.NewGenerator(registry)
				proof, err := generator.Generate(target, priv, depth)
				if err != nil {
					return err
				}
				fields.Add("target", target)
				fields.Add("chain_length", len(proof.CausalChain))

				header, err = causalproof.EncodeHeader(proof)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), header)
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "registry.json", "path to the registry snapshot file")
	cmd.Flags().StringVar(&target, "target", "", "causal event id to prove")
	cmd.Flags().StringVar(&privKeyPath, "priv", "causal.key", "path to the signing private key")
	cmd.Flags().IntVar(&depth, "depth", 0, "causal chain depth (0 means unlimited)")
	return cmd
}
