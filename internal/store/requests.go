package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wmspro/wms/internal/model"
)

// CreateRequest creates a Pending request for an item from central
// stock. The item's canonical category and unit are looked up from the
// central location; the requested quantity is not validated against
// current stock (that happens at issue time).
func CreateRequest(ctx context.Context, db *sql.DB, supervisorName, region, itemName string, quantity int) (*model.Request, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	item, err := GetStockItem(ctx, db, itemName, model.CentralLocation)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %q in central stock: %w", itemName, ErrNotFound)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO requests (supervisor_name, region, item_name, category, quantity, unit, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		supervisorName, region, itemName, item.Category, quantity, item.Unit, model.RequestPending,
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting request id: %w", err)
	}
	return GetRequest(ctx, db, id)
}

// GetRequest returns a request by ID, or nil if it doesn't exist.
func GetRequest(ctx context.Context, db *sql.DB, reqID int64) (*model.Request, error) {
	req := &model.Request{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT req_id, supervisor_name, region, item_name, category, quantity, unit, status, request_date, notes
		 FROM requests WHERE req_id = ?`, reqID,
	).Scan(&req.ReqID, &req.SupervisorName, &req.Region, &req.ItemName, &req.Category,
		&req.Quantity, &req.Unit, &req.Status, &req.RequestDate, &notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting request: %w", err)
	}
	req.Notes = notes.String
	return req, nil
}

// ListRequests returns requests newest first, optionally filtered by
// status and requesting supervisor.
func ListRequests(ctx context.Context, db *sql.DB, status, supervisorName string) ([]model.Request, error) {
	query := `SELECT req_id, supervisor_name, region, item_name, category, quantity, unit, status, request_date, notes
	          FROM requests WHERE 1=1`
	var args []any

	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if supervisorName != "" {
		query += ` AND supervisor_name = ?`
		args = append(args, supervisorName)
	}

	query += ` ORDER BY request_date DESC, req_id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var requests []model.Request
	for rows.Next() {
		var req model.Request
		var notes sql.NullString
		if err := rows.Scan(&req.ReqID, &req.SupervisorName, &req.Region, &req.ItemName, &req.Category,
			&req.Quantity, &req.Unit, &req.Status, &req.RequestDate, &notes); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		req.Notes = notes.String
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ApproveRequest moves a Pending request to Approved, overwriting the
// quantity and notes with the approver's values. Availability is not
// re-checked against current stock; the issue step validates it.
func ApproveRequest(ctx context.Context, db *sql.DB, reqID int64, quantity int, notes string) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return transitionRequest(ctx, db, reqID, model.RequestApproved, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE requests SET status = ?, quantity = ?, notes = ? WHERE req_id = ?`,
			model.RequestApproved, quantity, notes, reqID,
		)
		return err
	})
}

// RejectRequest moves a Pending request to Rejected with notes. The
// quantity is left untouched.
func RejectRequest(ctx context.Context, db *sql.DB, reqID int64, notes string) error {
	return transitionRequest(ctx, db, reqID, model.RequestRejected, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE requests SET status = ?, notes = ? WHERE req_id = ?`,
			model.RequestRejected, notes, reqID,
		)
		return err
	})
}

// IssueRequest fulfills an Approved request from central stock:
// decrements the central inventory row, appends one Issued audit entry,
// and marks the request Issued. The caller supplies the item and
// quantity independently of the stored request row, so they may diverge
// from what the request says. The decrement is guarded the same way as
// transfers.
func IssueRequest(ctx context.Context, db *sql.DB, actor string, reqID int64, itemName string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM requests WHERE req_id = ?`, reqID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("request %d: %w", reqID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking request status: %w", err)
	}
	if !model.CanTransition(status, model.RequestIssued) {
		return fmt.Errorf("request %d is %s: %w", reqID, status, ErrInvalidTransition)
	}

	var available int
	var unit string
	err = tx.QueryRowContext(ctx,
		`SELECT quantity, unit FROM inventory WHERE name = ? AND location = ?`,
		itemName, model.CentralLocation,
	).Scan(&available, &unit)
	if err == sql.ErrNoRows {
		return fmt.Errorf("item %q in central stock: %w", itemName, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking central stock: %w", err)
	}
	if available < quantity {
		return fmt.Errorf("%q in central stock: have %d, need %d: %w",
			itemName, available, quantity, ErrInsufficientStock)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE inventory
		 SET quantity = quantity - ?,
		     status = CASE WHEN quantity - ? = 0 THEN ? ELSE ? END,
		     last_updated = CURRENT_TIMESTAMP
		 WHERE name = ? AND location = ? AND quantity >= ?`,
		quantity, quantity, model.StockStatusDepleted, model.StockStatusAvailable,
		itemName, model.CentralLocation, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrementing central stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%q in central stock: %w", itemName, ErrInsufficientStock)
	}

	err = AppendStockLog(ctx, tx, &model.StockLog{
		ActionBy:     actor,
		ActionKind:   model.ActionIssued,
		ItemName:     itemName,
		Location:     model.CentralLocation,
		ChangeAmount: -quantity,
		NewQuantity:  available - quantity,
		Unit:         unit,
	})
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE requests SET status = ? WHERE req_id = ?`,
		model.RequestIssued, reqID,
	)
	if err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing issue: %w", err)
	}
	return nil
}

// transitionRequest checks the status transition inside a transaction
// before applying the update. Illegal transitions leave the row
// unchanged.
func transitionRequest(ctx context.Context, db *sql.DB, reqID int64, to string, apply func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM requests WHERE req_id = ?`, reqID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("request %d: %w", reqID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking request status: %w", err)
	}

	if !model.CanTransition(status, to) {
		return fmt.Errorf("request %d is %s, cannot become %s: %w", reqID, status, to, ErrInvalidTransition)
	}

	if err := apply(tx); err != nil {
		return fmt.Errorf("updating request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing request update: %w", err)
	}
	return nil
}
