package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

const federationUtxoColumns = `
    txid,
    output_index,
    address,
    amount,
    created_height,
    created_time,
    unspent,
    last_verified_height,
    COALESCE(spent_time, 0)`

// UtxosDueForVerification returns the unspent utxos whose state is verified up to
// height-1 and therefore must be checked at height.
func (r *Repository) UtxosDueForVerification(ctx context.Context, height uint64) (utxos []model.FederationUtxo, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("utxos_due_for_verification", err, started)
	}()

	if height == 0 {
		return nil, nil
	}

	query := `SELECT` + federationUtxoColumns + `
FROM federation_utxos
WHERE unspent = 1 AND last_verified_height = ?
ORDER BY txid, output_index`

	return r.queryFederationUtxos(ctx, query, height-1)
}

// UnspentFederationUtxos returns the live reserve, newest first.
func (r *Repository) UnspentFederationUtxos(ctx context.Context) (utxos []model.FederationUtxo, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("unspent_federation_utxos", err, started)
	}()

	query := `SELECT` + federationUtxoColumns + `
FROM federation_utxos
WHERE unspent = 1
ORDER BY created_time DESC, txid, output_index`

	return r.queryFederationUtxos(ctx, query)
}

// FederationUtxo returns a single tracked utxo, spent or not.
func (r *Repository) FederationUtxo(ctx context.Context, outpoint model.Outpoint) (utxo model.FederationUtxo, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("federation_utxo", err, started)
	}()

	query := `SELECT` + federationUtxoColumns + `
FROM federation_utxos
WHERE txid = ? AND output_index = ?`

	utxo, err = scanFederationUtxo(r.db.QueryRowContext(ctx, query, outpoint.TxID, outpoint.Index))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FederationUtxo{}, fmt.Errorf("federation utxo %s: %w", outpoint, ErrNotFound)
		}
		return model.FederationUtxo{}, fmt.Errorf("query federation utxo %s: %w", outpoint, err)
	}
	return utxo, nil
}

func (r *Repository) queryFederationUtxos(ctx context.Context, query string, args ...any) (utxos []model.FederationUtxo, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query federation utxos: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		utxo, err := scanFederationUtxo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan federation utxo: %w", err)
		}
		utxos = append(utxos, utxo)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate federation utxos: %w", err)
	}
	return utxos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFederationUtxo(row rowScanner) (model.FederationUtxo, error) {
	var (
		utxo        model.FederationUtxo
		createdTime int64
		spentTime   int64
	)
	if err := row.Scan(
		&utxo.TxID,
		&utxo.Index,
		&utxo.Address,
		&utxo.Amount,
		&utxo.CreatedHeight,
		&createdTime,
		&utxo.Unspent,
		&utxo.LastVerifiedHeight,
		&spentTime,
	); err != nil {
		return model.FederationUtxo{}, err
	}
	utxo.CreatedTime = fromUnix(createdTime)
	utxo.SpentTime = fromUnix(spentTime)
	return utxo, nil
}
