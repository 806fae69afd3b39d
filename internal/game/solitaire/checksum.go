package solitaire

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Checksum returns a SHA-256 digest of the state's canonical JSON. The UI
// message is left out so two states that differ only in what the player was
// last told compare equal. Map keys are emitted sorted, so the digest is
// stable across runs.
func (s GameState) Checksum() (string, error) {
	s.UI = UIState{}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
