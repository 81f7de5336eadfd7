// Package cli wires the causalproofctl subcommands together, grounded
// on the same cobra root/subcommand shape the rest of the example
// corpus uses for its command-line tools.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agentledger/causalproof/internal/config"
	"github.com/agentledger/causalproof/internal/logging"
)

// RootOptions holds flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func (o *RootOptions) env() logging.Environment {
	return logging.Environment{
		Service: o.cfg.Logging.Service,
		Version: o.cfg.Logging.Version,
		Commit:  o.cfg.Logging.Commit,
	}
}

// NewRootCommand builds the causalproofctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "causalproofctl",
		Short: "causalproofctl manages a causal event log and its proofs",
		Long:  "causalproofctl registers causally-linked events, generates and verifies proofs of their order, and manages the signing keys behind them.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			opts.logger = logging.NewJSONLogger()
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "causalproofctl.yaml", "path to config file")

	cmd.AddCommand(newKeygenCommand(opts))
	cmd.AddCommand(newRegisterCommand(opts))
	cmd.AddCommand(newProveCommand(opts))
	cmd.AddCommand(newVerifyCommand(opts))
	cmd.AddCommand(newExportCommand(opts))

	return cmd
}
