// ./internal/state/snapshot_store.go
package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/carbonswap/sushiswap-analytics/internal/types"
)

// SavePortfolioSnapshot persists one evaluated portfolio to the database.
// The price and investments columns mirror the metrics payload for cheap
// history queries; NULL records an unavailable metric.
func SavePortfolioSnapshot(metrics types.PortfolioMetrics) (int64, error) {
	if DB == nil {
		return 0, fmt.Errorf("database not initialized")
	}

	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `
		INSERT INTO portfolio_snapshots (
			address, evaluated_at, block_number, sushi_price, investments_usd, metrics
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING snapshot_id;
	`

	var snapshotID int64
	err = DB.QueryRow(
		query,
		metrics.Address, metrics.EvaluatedAt, metrics.BlockNumber,
		metricToNull(metrics.SushiPrice), metricToNull(metrics.InvestmentsUSD),
		metricsJSON,
	).Scan(&snapshotID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert portfolio snapshot: %w", err)
	}

	log.Debug().
		Int64("snapshotID", snapshotID).
		Str("address", metrics.Address).
		Msg("Saved portfolio snapshot")
	return snapshotID, nil
}

// GetRecentSnapshots retrieves the most recent evaluations for an address,
// newest first.
func GetRecentSnapshots(address string, limit int) ([]types.PortfolioMetrics, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 || limit > 100 {
		limit = 10 // Default limit
	}

	query := `
		SELECT metrics
		FROM portfolio_snapshots
		WHERE address = $1
		ORDER BY evaluated_at DESC
		LIMIT $2;
	`

	rows, err := DB.Query(query, address, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]types.PortfolioMetrics, 0, limit)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}

		var metrics types.PortfolioMetrics
		if err := json.Unmarshal(payload, &metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot metrics: %w", err)
		}
		snapshots = append(snapshots, metrics)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot row iteration failed: %w", err)
	}

	return snapshots, nil
}

// GetLatestSnapshot retrieves the most recent evaluation for an address.
// Returns sql.ErrNoRows when the address has never been evaluated.
func GetLatestSnapshot(address string) (types.PortfolioMetrics, error) {
	snapshots, err := GetRecentSnapshots(address, 1)
	if err != nil {
		return types.PortfolioMetrics{}, err
	}
	if len(snapshots) == 0 {
		return types.PortfolioMetrics{}, sql.ErrNoRows
	}
	return snapshots[0], nil
}

// metricToNull maps an unavailable metric to a SQL NULL.
func metricToNull(metric types.Metric) sql.NullFloat64 {
	return sql.NullFloat64{Float64: metric.Value, Valid: metric.Valid}
}
