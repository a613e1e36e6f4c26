// Package history keeps a ledger of analysis runs so successive snapshots of
// the same graph can be compared: is the dependency web growing, getting
// denser, or picking up cycles?
package history

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/beadviewer/bvgraph/pkg/storage"
)

// Snapshot represents one analysis run.
type Snapshot struct {
	Timestamp  int64   `json:"timestamp"` // Unix epoch
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Density    float64 `json:"density"`
	HasCycles  bool    `json:"has_cycles"`
	Degeneracy int     `json:"degeneracy"`
	// TopImpact is the best transitive unblock count seen in the run's
	// what-if ranking, 0 when the ranking was skipped.
	TopImpact int `json:"top_impact"`
}

const ledgerKey = "ledger.jsonl"

// Client reads and appends the run ledger through a storage backend.
type Client struct {
	store storage.BlobStore
}

// NewClient wraps a storage backend.
func NewClient(store storage.BlobStore) *Client {
	return &Client{store: store}
}

// NewLocalClient stores the ledger under dir.
func NewLocalClient(dir string) *Client {
	return NewClient(storage.NewLocalStore(dir))
}

// Append adds a snapshot to the ledger.
func (c *Client) Append(ctx context.Context, s Snapshot) error {
	existing, err := c.store.Get(ctx, ledgerKey)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	line, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	existing = append(existing, line...)
	existing = append(existing, '\n')

	if err := c.store.Put(ctx, ledgerKey, existing); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// LoadWindow returns the most recent n snapshots, oldest first. A missing
// ledger yields an empty window.
func (c *Client) LoadWindow(ctx context.Context, n int) ([]Snapshot, error) {
	data, err := c.store.Get(ctx, ledgerKey)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var window []Snapshot
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var s Snapshot
		if err := json.Unmarshal(line, &s); err != nil {
			// Skip corrupt lines rather than losing the whole window.
			continue
		}
		window = append(window, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan ledger: %w", err)
	}

	if n > 0 && len(window) > n {
		window = window[len(window)-n:]
	}
	return window, nil
}
