package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wmspro/wms/internal/model"
)

// Execer is the subset of database operations needed to append a stock
// log. Both *sql.DB and *sql.Tx satisfy it, so log writes can join the
// transaction of the mutation they record.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AppendStockLog inserts one immutable audit record with a
// server-assigned timestamp. The ledger itself stores no history, so an
// insert error always propagates; it is never swallowed.
func AppendStockLog(ctx context.Context, ex Execer, l *model.StockLog) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO stock_logs (action_by, action_kind, counterparty, item_name, location, change_amount, new_quantity, unit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ActionBy, l.ActionKind, l.Counterparty, l.ItemName, l.Location, l.ChangeAmount, l.NewQuantity, l.Unit,
	)
	if err != nil {
		return fmt.Errorf("appending stock log: %w", err)
	}
	return nil
}

// ListStockLogs returns audit records newest first, optionally filtered
// by item name and location. A limit of 0 means no limit.
func ListStockLogs(ctx context.Context, db *sql.DB, itemName, location string, limit int) ([]model.StockLog, error) {
	query := `SELECT id, action_by, action_kind, counterparty, item_name, location, change_amount, new_quantity, unit, log_date
	          FROM stock_logs WHERE 1=1`
	var args []any

	if itemName != "" {
		query += ` AND item_name = ?`
		args = append(args, itemName)
	}
	if location != "" {
		query += ` AND location = ?`
		args = append(args, location)
	}

	query += ` ORDER BY log_date DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing stock logs: %w", err)
	}
	defer rows.Close()

	var logs []model.StockLog
	for rows.Next() {
		var l model.StockLog
		if err := rows.Scan(&l.ID, &l.ActionBy, &l.ActionKind, &l.Counterparty, &l.ItemName, &l.Location,
			&l.ChangeAmount, &l.NewQuantity, &l.Unit, &l.LogDate); err != nil {
			return nil, fmt.Errorf("scanning stock log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
