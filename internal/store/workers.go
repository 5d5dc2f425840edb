package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wmspro/wms/internal/model"
)

// CreateWorker creates a worker record.
func CreateWorker(ctx context.Context, db *sql.DB, name, empID, role, region string, shiftID *int64) (*model.Worker, error) {
	if name == "" || empID == "" {
		return nil, fmt.Errorf("name and employee id are required")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO workers (name, emp_id, role, region, shift_id, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, empID, role, region, shiftID, model.WorkerActive,
	)
	if err != nil {
		return nil, fmt.Errorf("creating worker: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting worker id: %w", err)
	}
	return GetWorker(ctx, db, id)
}

// GetWorker returns a worker by ID, or nil if it doesn't exist.
func GetWorker(ctx context.Context, db *sql.DB, id int64) (*model.Worker, error) {
	w := &model.Worker{}
	var shiftName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT w.id, w.name, w.emp_id, w.role, w.region, w.shift_id, w.status, s.name
		 FROM workers w
		 LEFT JOIN shifts s ON s.id = w.shift_id
		 WHERE w.id = ?`, id,
	).Scan(&w.ID, &w.Name, &w.EmpID, &w.Role, &w.Region, &w.ShiftID, &w.Status, &shiftName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting worker: %w", err)
	}
	w.ShiftName = shiftName.String
	return w, nil
}

// ListWorkers returns workers, optionally filtered by region.
func ListWorkers(ctx context.Context, db *sql.DB, region string) ([]model.Worker, error) {
	query := `SELECT w.id, w.name, w.emp_id, w.role, w.region, w.shift_id, w.status, s.name
	          FROM workers w
	          LEFT JOIN shifts s ON s.id = w.shift_id`
	var args []any
	if region != "" {
		query += ` WHERE w.region = ?`
		args = append(args, region)
	}
	query += ` ORDER BY w.name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []model.Worker
	for rows.Next() {
		var w model.Worker
		var shiftName sql.NullString
		if err := rows.Scan(&w.ID, &w.Name, &w.EmpID, &w.Role, &w.Region, &w.ShiftID, &w.Status, &shiftName); err != nil {
			return nil, fmt.Errorf("scanning worker: %w", err)
		}
		w.ShiftName = shiftName.String
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// UpdateWorker updates a worker record.
func UpdateWorker(ctx context.Context, db *sql.DB, id int64, name, empID, role, region string, shiftID *int64, status string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE workers SET name = ?, emp_id = ?, role = ?, region = ?, shift_id = ?, status = ?
		 WHERE id = ?`,
		name, empID, role, region, shiftID, status, id,
	)
	if err != nil {
		return fmt.Errorf("updating worker: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("worker %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateShift creates a shift.
func CreateShift(ctx context.Context, db *sql.DB, name, startTime, endTime string) (*model.Shift, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO shifts (name, start_time, end_time) VALUES (?, ?, ?)`,
		name, startTime, endTime,
	)
	if err != nil {
		return nil, fmt.Errorf("creating shift: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting shift id: %w", err)
	}

	s := &model.Shift{}
	err = db.QueryRowContext(ctx,
		`SELECT id, name, start_time, end_time FROM shifts WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime)
	if err != nil {
		return nil, fmt.Errorf("getting shift: %w", err)
	}
	return s, nil
}

// ListShifts returns all shifts.
func ListShifts(ctx context.Context, db *sql.DB) ([]model.Shift, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, start_time, end_time FROM shifts ORDER BY start_time`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		if err := rows.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scanning shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
