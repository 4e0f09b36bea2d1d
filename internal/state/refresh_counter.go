/*

This file manages the persistent global refresh-cycle counter for the
tracker. The counter is stored in the database to ensure continuity across
restarts.

*/

package state

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// ensureRefreshCounterTable creates the refresh_counter table if it doesn't exist
func ensureRefreshCounterTable() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS refresh_counter (
			id INTEGER PRIMARY KEY DEFAULT 1,
			current_cycle INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT single_row_check CHECK (id = 1)
		);

		INSERT INTO refresh_counter (id, current_cycle)
		VALUES (1, 0)
		ON CONFLICT (id) DO NOTHING;
	`

	_, err := DB.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create refresh_counter table: %w", err)
	}

	log.Debug().Msg("Ensured refresh_counter table exists")
	return nil
}

// IncrementCycleNumber atomically increments and returns the refresh cycle number.
func IncrementCycleNumber() (int, error) {
	if DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	query := `
		UPDATE refresh_counter
		SET current_cycle = current_cycle + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
		RETURNING current_cycle;
	`

	var cycleNumber int
	if err := DB.QueryRow(query).Scan(&cycleNumber); err != nil {
		return 0, fmt.Errorf("failed to increment cycle number: %w", err)
	}

	return cycleNumber, nil
}
