package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// PegBalance returns the net pegged amount (peg-ins minus peg-outs).
func (r *Repository) PegBalance(ctx context.Context) (amount int64, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("peg_balance", err, started)
	}()

	const query = `SELECT COALESCE(SUM(amount), 0) FROM peg_events`

	if err = r.db.QueryRowContext(ctx, query).Scan(&amount); err != nil {
		return 0, fmt.Errorf("query peg balance: %w", err)
	}
	return amount, nil
}

// ReserveBalance returns the total amount held in unspent federation utxos.
func (r *Repository) ReserveBalance(ctx context.Context) (amount int64, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("reserve_balance", err, started)
	}()

	const query = `SELECT COALESCE(SUM(amount), 0) FROM federation_utxos WHERE unspent = 1`

	if err = r.db.QueryRowContext(ctx, query).Scan(&amount); err != nil {
		return 0, fmt.Errorf("query reserve balance: %w", err)
	}
	return amount, nil
}

// PegsByMonth returns the net pegged amount per calendar month of side-chain block time.
func (r *Repository) PegsByMonth(ctx context.Context) (months []model.MonthlyAmount, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("pegs_by_month", err, started)
	}()

	const query = `
SELECT strftime('%Y-%m-01', side_time, 'unixepoch') AS month, SUM(amount)
FROM peg_events
GROUP BY month
ORDER BY month`

	return r.queryMonthlyAmounts(ctx, query)
}

// ReservesByMonth returns the unspent reserve grouped by the month its utxos were created.
func (r *Repository) ReservesByMonth(ctx context.Context) (months []model.MonthlyAmount, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("reserves_by_month", err, started)
	}()

	const query = `
SELECT strftime('%Y-%m-01', created_time, 'unixepoch') AS month, SUM(amount)
FROM federation_utxos
WHERE unspent = 1
GROUP BY month
ORDER BY month`

	return r.queryMonthlyAmounts(ctx, query)
}

// TopAddresses ranks federation addresses by unspent balance, largest first.
func (r *Repository) TopAddresses(ctx context.Context) (balances []model.AddressBalance, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("top_addresses", err, started)
	}()

	const query = `
SELECT address, SUM(amount) AS balance
FROM federation_utxos
WHERE unspent = 1
GROUP BY address
ORDER BY balance DESC, address`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query top addresses: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	balances = []model.AddressBalance{}
	for rows.Next() {
		var b model.AddressBalance
		if err = rows.Scan(&b.Address, &b.Balance); err != nil {
			return nil, fmt.Errorf("scan address balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address balances: %w", err)
	}
	return balances, nil
}

// FederationAddresses lists every address that ever received a peg-in, in discovery order.
func (r *Repository) FederationAddresses(ctx context.Context) (addresses []string, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("federation_addresses", err, started)
	}()

	const query = `SELECT address FROM federation_addresses ORDER BY first_seen_height, address`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query federation addresses: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	addresses = []string{}
	for rows.Next() {
		var address string
		if err = rows.Scan(&address); err != nil {
			return nil, fmt.Errorf("scan federation address: %w", err)
		}
		addresses = append(addresses, address)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate federation addresses: %w", err)
	}
	return addresses, nil
}

func (r *Repository) queryMonthlyAmounts(ctx context.Context, query string) (months []model.MonthlyAmount, err error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query monthly amounts: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	months = []model.MonthlyAmount{}
	for rows.Next() {
		var m model.MonthlyAmount
		if err = rows.Scan(&m.Date, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly amount: %w", err)
		}
		months = append(months, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly amounts: %w", err)
	}
	return months, nil
}
