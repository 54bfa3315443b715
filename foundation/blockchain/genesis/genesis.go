// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time `json:"date"`
	ChainID       uint16    `json:"chain_id"`        // A unique id for this running network.
	TransPerBlock uint16    `json:"trans_per_block"` // The maximum number of transactions that can be in a block.
	Difficulty    uint16    `json:"difficulty"`      // How many leading zero hex digits a block hash needs.
	MiningReward  uint64    `json:"mining_reward"`   // Reward for mining a block.
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("unable to read genesis file: %w", err)
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("unable to decode genesis file: %w", err)
	}

	if err := validate(genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// validate checks the genesis settings describe a network that can mine.
func validate(genesis Genesis) error {
	if genesis.Difficulty == 0 {
		return fmt.Errorf("genesis difficulty must be at least 1")
	}
	if genesis.Difficulty > 64 {
		return fmt.Errorf("genesis difficulty %d exceeds the hash length", genesis.Difficulty)
	}
	if genesis.TransPerBlock == 0 {
		return fmt.Errorf("genesis trans_per_block must be at least 1")
	}

	return nil
}
