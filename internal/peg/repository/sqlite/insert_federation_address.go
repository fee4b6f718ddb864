package sqlite

import (
	"context"
	"fmt"
	"time"
)

func (t *Tx) InsertFederationAddress(ctx context.Context, address string, firstSeenHeight uint64) (err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("insert_federation_address", err, started)
	}()

	const query = `
INSERT INTO federation_addresses (address, first_seen_height)
VALUES (?, ?)
ON CONFLICT (address) DO NOTHING`

	if _, err = t.tx.ExecContext(ctx, query, address, firstSeenHeight); err != nil {
		return fmt.Errorf("insert federation address %s: %w", address, err)
	}
	return nil
}
