package config

import (
	"github.com/rs/zerolog/log"
)

// Endpoint configuration loaded from environment variables.
// Each variable names one of the independent subgraph data sources; the
// fetch layer receives these as explicit handles, there is no implicit
// "client name" routing.
var (
	// ExchangeSubgraph serves pair reserves, token derived-ETH rates and the ETH bundle.
	ExchangeSubgraph string
	// BarSubgraph serves staking (xSUSHI bar) users.
	BarSubgraph string
	// MasterChefSubgraph serves farming pool users.
	MasterChefSubgraph string
	// LockupSubgraph serves reward-lockup snapshots.
	LockupSubgraph string
	// BlocksSubgraph serves the latest block height.
	BlocksSubgraph string
)

// loadEndpointConfig loads endpoint configuration from environment variables.
// This function is called by LoadConfig() in General.go.
func loadEndpointConfig() error {
	log.Info().Msg("Loading subgraph endpoint configuration from environment variables...")

	var err error

	ExchangeSubgraph, err = getEnv("EXCHANGE_SUBGRAPH")
	if err != nil {
		return err
	}

	BarSubgraph, err = getEnv("BAR_SUBGRAPH")
	if err != nil {
		return err
	}

	MasterChefSubgraph, err = getEnv("MASTERCHEF_SUBGRAPH")
	if err != nil {
		return err
	}

	LockupSubgraph, err = getEnv("LOCKUP_SUBGRAPH")
	if err != nil {
		return err
	}

	BlocksSubgraph, err = getEnv("BLOCKS_SUBGRAPH")
	if err != nil {
		return err
	}

	log.Debug().
		Str("ExchangeSubgraph", ExchangeSubgraph).
		Str("BarSubgraph", BarSubgraph).
		Str("MasterChefSubgraph", MasterChefSubgraph).
		Str("LockupSubgraph", LockupSubgraph).
		Str("BlocksSubgraph", BlocksSubgraph).
		Msg("Endpoint configuration loaded successfully.")

	return nil
}
