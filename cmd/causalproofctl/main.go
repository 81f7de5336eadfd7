// Command causalproofctl registers causally-linked events against a
// local snapshot file, generates and verifies proofs of their order,
// and manages the secp256k1 keys signing them.
package main

import (
	"fmt"
	"os"

	"github.com/agentledger/causalproof/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
