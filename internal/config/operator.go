package config

import (
	"fmt"

	"github.com/shekel-labs/shekel-settlement/internal/types"
)

// OperatorConfig carries the identity allowed to run administrative
// operations and the program id the protocol addresses are derived from.
// Both are parsed once by Validate.
type OperatorConfig struct {
	Address   string `mapstructure:"address"`
	ProgramID string `mapstructure:"program-id"`

	operator  types.Address
	programID types.Address
}

func (cfg *OperatorConfig) Validate() error {
	operator, err := types.ParseAddress(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid operator address: %w", err)
	}

	programID, err := types.ParseAddress(cfg.ProgramID)
	if err != nil {
		return fmt.Errorf("invalid program id: %w", err)
	}

	cfg.operator = operator
	cfg.programID = programID
	return nil
}

// OperatorAddress is valid only after Validate succeeded.
func (cfg *OperatorConfig) OperatorAddress() types.Address {
	return cfg.operator
}

// ProgramAddress is valid only after Validate succeeded.
func (cfg *OperatorConfig) ProgramAddress() types.Address {
	return cfg.programID
}
