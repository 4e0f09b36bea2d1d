/*

This file contains the shared GraphQL-over-HTTP plumbing for the subgraph
fetchers. Every data source speaks the same protocol: a POST of
{query, variables} answered by {data, errors}.

Fetches are strict: a transport failure, a non-200 status or a GraphQL
error aborts the whole request after retries. Financial metrics are never
computed from a partially fetched cycle.

*/

package datafetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/carbonswap/sushiswap-analytics/internal/logger"
)

var subgraphLogger = logger.GetForComponent("subgraph_client")

var ErrSubgraphQuery = errors.New("subgraph query failed")

const (
	MAX_RETRIES     = 3
	TIMEOUT_SECONDS = 30
)

var httpClient = &http.Client{
	Timeout: TIMEOUT_SECONDS * time.Second,
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// querySubgraph executes one GraphQL query against an endpoint and decodes
// the data payload into out. Transient transport failures are retried with
// a short backoff.
func querySubgraph(ctx context.Context, endpoint, query string, variables map[string]interface{}, out interface{}) error {
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint is empty", ErrSubgraphQuery)
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%w: marshal request: %w", ErrSubgraphQuery, err)
	}

	var lastErr error
	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
			subgraphLogger.Debug().
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Msg("Retrying subgraph query")
		}

		lastErr = executeQuery(ctx, endpoint, body, out)
		if lastErr == nil {
			return nil
		}

		subgraphLogger.Warn().
			Err(lastErr).
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Msg("Subgraph query attempt failed")
	}

	return fmt.Errorf("%w: %d attempts against %s: %w", ErrSubgraphQuery, MAX_RETRIES, endpoint, lastErr)
}

func executeQuery(ctx context.Context, endpoint string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(payload, 200))
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if len(envelope.Data) == 0 {
		return errors.New("response contains no data")
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
