package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wmspro/wms/internal/model"
)

// CreateStockItem creates a new inventory row for (name, location).
func CreateStockItem(ctx context.Context, db *sql.DB, name, category, location string, quantity int, unit string) (*model.StockItem, error) {
	if name == "" || location == "" {
		return nil, fmt.Errorf("name and location are required")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	existing, err := GetStockItem(ctx, db, name, location)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%q at %s: %w", name, location, ErrItemExists)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO inventory (name, category, location, quantity, unit, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, category, location, quantity, unit, model.StockStatusAvailable,
	)
	if err != nil {
		return nil, fmt.Errorf("creating stock item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting stock item id: %w", err)
	}
	return getStockItemByID(ctx, db, id)
}

// GetStockItem returns the inventory row for (name, location), or nil if
// no such row exists.
func GetStockItem(ctx context.Context, db *sql.DB, name, location string) (*model.StockItem, error) {
	it := &model.StockItem{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, category, location, quantity, unit, status, last_updated
		 FROM inventory WHERE name = ? AND location = ?`, name, location,
	).Scan(&it.ID, &it.Name, &it.Category, &it.Location, &it.Quantity, &it.Unit, &it.Status, &it.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting stock item: %w", err)
	}
	return it, nil
}

func getStockItemByID(ctx context.Context, db *sql.DB, id int64) (*model.StockItem, error) {
	it := &model.StockItem{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, category, location, quantity, unit, status, last_updated
		 FROM inventory WHERE id = ?`, id,
	).Scan(&it.ID, &it.Name, &it.Category, &it.Location, &it.Quantity, &it.Unit, &it.Status, &it.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting stock item: %w", err)
	}
	return it, nil
}

// ListInventory returns inventory rows, optionally filtered by location.
func ListInventory(ctx context.Context, db *sql.DB, location string) ([]model.StockItem, error) {
	query := `SELECT id, name, category, location, quantity, unit, status, last_updated
	          FROM inventory`
	var args []any
	if location != "" {
		query += ` WHERE location = ?`
		args = append(args, location)
	}
	query += ` ORDER BY name, location`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	var items []model.StockItem
	for rows.Next() {
		var it model.StockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Location, &it.Quantity, &it.Unit, &it.Status, &it.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// TransferStock moves quantity of an item between locations, appending
// paired audit entries. The whole sequence runs in one transaction and
// the source decrement is guarded on current quantity, so concurrent
// transfers cannot drive stock negative or lose an update.
func TransferStock(ctx context.Context, db *sql.DB, actor, itemName, fromLocation, toLocation string, quantity int) (*model.TransferSummary, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if fromLocation == toLocation {
		return nil, fmt.Errorf("cannot transfer to same location")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Read the source row for the availability check and for the
	// category/unit to copy if the destination has to be created.
	var src model.StockItem
	err = tx.QueryRowContext(ctx,
		`SELECT quantity, category, unit FROM inventory WHERE name = ? AND location = ?`,
		itemName, fromLocation,
	).Scan(&src.Quantity, &src.Category, &src.Unit)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("source item %q at %s: %w", itemName, fromLocation, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checking source stock: %w", err)
	}

	if src.Quantity < quantity {
		return nil, fmt.Errorf("%q at %s: have %d, need %d: %w",
			itemName, fromLocation, src.Quantity, quantity, ErrInsufficientStock)
	}

	// Decrement the source, guarded so the quantity can never go
	// negative even outside this transaction's isolation. A row drained
	// to zero is kept but marked depleted.
	res, err := tx.ExecContext(ctx,
		`UPDATE inventory
		 SET quantity = quantity - ?,
		     status = CASE WHEN quantity - ? = 0 THEN ? ELSE ? END,
		     last_updated = CURRENT_TIMESTAMP
		 WHERE name = ? AND location = ? AND quantity >= ?`,
		quantity, quantity, model.StockStatusDepleted, model.StockStatusAvailable,
		itemName, fromLocation, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("decrementing source stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%q at %s: %w", itemName, fromLocation, ErrInsufficientStock)
	}

	sourceRemaining := src.Quantity - quantity
	err = AppendStockLog(ctx, tx, &model.StockLog{
		ActionBy:     actor,
		ActionKind:   model.ActionTransferOut,
		Counterparty: toLocation,
		ItemName:     itemName,
		Location:     fromLocation,
		ChangeAmount: -quantity,
		NewQuantity:  sourceRemaining,
		Unit:         src.Unit,
	})
	if err != nil {
		return nil, err
	}

	// Increment the destination if it exists, otherwise create it with
	// the source's category and unit.
	var destQuantity int
	var destCurrent int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM inventory WHERE name = ? AND location = ?`,
		itemName, toLocation,
	).Scan(&destCurrent)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO inventory (name, category, location, quantity, unit, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			itemName, src.Category, toLocation, quantity, src.Unit, model.StockStatusAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("creating destination stock: %w", err)
		}
		destQuantity = quantity
	case err != nil:
		return nil, fmt.Errorf("checking destination stock: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE inventory SET quantity = quantity + ?, status = ?, last_updated = CURRENT_TIMESTAMP
			 WHERE name = ? AND location = ?`,
			quantity, model.StockStatusAvailable, itemName, toLocation,
		)
		if err != nil {
			return nil, fmt.Errorf("incrementing destination stock: %w", err)
		}
		destQuantity = destCurrent + quantity
	}

	err = AppendStockLog(ctx, tx, &model.StockLog{
		ActionBy:     actor,
		ActionKind:   model.ActionTransferIn,
		Counterparty: fromLocation,
		ItemName:     itemName,
		Location:     toLocation,
		ChangeAmount: quantity,
		NewQuantity:  destQuantity,
		Unit:         src.Unit,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transfer: %w", err)
	}

	return &model.TransferSummary{
		ItemName:        itemName,
		Unit:            src.Unit,
		Quantity:        quantity,
		FromLocation:    fromLocation,
		ToLocation:      toLocation,
		SourceRemaining: sourceRemaining,
		DestQuantity:    destQuantity,
	}, nil
}

// AdjustStock applies a manual correction to an inventory row and
// appends a manual-adjust audit entry. Delta can be negative; an
// adjustment that would drive the quantity below zero is refused.
func AdjustStock(ctx context.Context, db *sql.DB, actor, itemName, location string, delta int) (int, error) {
	if delta == 0 {
		return 0, fmt.Errorf("delta must be non-zero")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	var unit string
	err = tx.QueryRowContext(ctx,
		`SELECT quantity, unit FROM inventory WHERE name = ? AND location = ?`,
		itemName, location,
	).Scan(&current, &unit)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("item %q at %s: %w", itemName, location, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("checking current quantity: %w", err)
	}

	newQty := current + delta
	if newQty < 0 {
		return 0, fmt.Errorf("%q at %s: have %d, adjust %d: %w",
			itemName, location, current, delta, ErrInsufficientStock)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE inventory
		 SET quantity = quantity + ?,
		     status = CASE WHEN quantity + ? = 0 THEN ? ELSE ? END,
		     last_updated = CURRENT_TIMESTAMP
		 WHERE name = ? AND location = ? AND quantity + ? >= 0`,
		delta, delta, model.StockStatusDepleted, model.StockStatusAvailable,
		itemName, location, delta,
	)
	if err != nil {
		return 0, fmt.Errorf("adjusting stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("%q at %s: %w", itemName, location, ErrInsufficientStock)
	}

	err = AppendStockLog(ctx, tx, &model.StockLog{
		ActionBy:     actor,
		ActionKind:   model.ActionManualAdjust,
		ItemName:     itemName,
		Location:     location,
		ChangeAmount: delta,
		NewQuantity:  newQty,
		Unit:         unit,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing adjustment: %w", err)
	}
	return newQty, nil
}
