package cli

import (
	"encoding/json"
	"fmt"
	"os"

	causalproof "github.com/agentledger/causalproof"
)

// loadSnapshot reads a JSON array of stored events from path. A
// missing file is treated as an empty snapshot so `register` can
// bootstrap a new log on first use.
func loadSnapshot(path string) ([]*causalproof.StoredEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var events []*causalproof.StoredEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return events, nil
}

// saveSnapshot writes the registry's exported events back to path.
func saveSnapshot(path string, events []*causalproof.StoredEvent) error {
	raw, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// openRegistry loads the snapshot at path (if any) and restores a
// registry bound to agentID from it.
func openRegistry(path, agentID string) (*causalproof.Registry, error) {
	events, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return causalproof.NewRegistry(agentID)
	}
	return causalproof.RestoreRegistry(agentID, events)
}
