package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wmspro/wms/internal/model"
)

// SubmitAttendance records attendance for a set of workers on one date
// and shift. The submission overwrites any existing rows for the same
// (worker, date, shift) block, so a supervisor can resubmit corrections.
func SubmitAttendance(ctx context.Context, db *sql.DB, supervisor, date string, shiftID int64, entries []model.AttendanceEntry) error {
	if date == "" {
		return fmt.Errorf("date is required")
	}
	if len(entries) == 0 {
		return fmt.Errorf("no attendance entries")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM attendance WHERE worker_id = ? AND date = ? AND shift_id = ?`,
			e.WorkerID, date, shiftID,
		)
		if err != nil {
			return fmt.Errorf("clearing previous attendance: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO attendance (worker_id, date, shift_id, status, notes, supervisor)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.WorkerID, date, shiftID, e.Status, e.Notes, supervisor,
		)
		if err != nil {
			return fmt.Errorf("recording attendance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing attendance: %w", err)
	}
	return nil
}

// ListAttendance returns attendance rows for a date, optionally filtered
// by shift and worker region.
func ListAttendance(ctx context.Context, db *sql.DB, date string, shiftID int64, region string) ([]model.Attendance, error) {
	query := `SELECT a.id, a.worker_id, a.date, a.shift_id, a.status, a.notes, a.supervisor, w.name
	          FROM attendance a
	          JOIN workers w ON w.id = a.worker_id
	          WHERE a.date = ?`
	args := []any{date}

	if shiftID > 0 {
		query += ` AND a.shift_id = ?`
		args = append(args, shiftID)
	}
	if region != "" {
		query += ` AND w.region = ?`
		args = append(args, region)
	}

	query += ` ORDER BY w.name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		var notes sql.NullString
		if err := rows.Scan(&a.ID, &a.WorkerID, &a.Date, &a.ShiftID, &a.Status, &notes, &a.Supervisor, &a.WorkerName); err != nil {
			return nil, fmt.Errorf("scanning attendance: %w", err)
		}
		a.Notes = notes.String
		records = append(records, a)
	}
	return records, rows.Err()
}

// CountAttendance returns the number of attendance rows with the given
// status on a date. Status "" counts all rows.
func CountAttendance(ctx context.Context, db *sql.DB, date, status string) (int, error) {
	query := `SELECT COUNT(*) FROM attendance WHERE date = ?`
	args := []any{date}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting attendance: %w", err)
	}
	return count, nil
}
