package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wmspro/wms/internal/model"
	"github.com/wmspro/wms/internal/store"
)

// ManpowerHandler handles worker, shift, and attendance endpoints.
type ManpowerHandler struct {
	DB *sql.DB
}

type workerRequest struct {
	Name    string `json:"name" validate:"required"`
	EmpID   string `json:"emp_id" validate:"required"`
	Role    string `json:"role"`
	Region  string `json:"region"`
	ShiftID *int64 `json:"shift_id"`
	Status  string `json:"status"`
}

type createShiftRequest struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type submitAttendanceRequest struct {
	Date    string                  `json:"date" validate:"required,datetime=2006-01-02"`
	ShiftID int64                   `json:"shift_id" validate:"gt=0"`
	Entries []model.AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// ListWorkers handles GET /api/workers.
func (h *ManpowerHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := store.ListWorkers(r.Context(), h.DB, r.URL.Query().Get("region"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list workers")
		return
	}
	if workers == nil {
		workers = []model.Worker{}
	}
	jsonResponse(w, http.StatusOK, workers)
}

// CreateWorker handles POST /api/workers.
func (h *ManpowerHandler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req workerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "name and emp_id are required")
		return
	}

	worker, err := store.CreateWorker(r.Context(), h.DB, req.Name, req.EmpID, req.Role, req.Region, req.ShiftID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create worker")
		return
	}

	jsonResponse(w, http.StatusCreated, worker)
}

// UpdateWorker handles PUT /api/workers/{id}.
func (h *ManpowerHandler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid worker id")
		return
	}

	var req workerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "name and emp_id are required")
		return
	}

	status := req.Status
	if status == "" {
		status = model.WorkerActive
	}

	if err := store.UpdateWorker(r.Context(), h.DB, id, req.Name, req.EmpID, req.Role, req.Region, req.ShiftID, status); err != nil {
		storeError(w, err)
		return
	}

	worker, err := store.GetWorker(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get worker")
		return
	}
	jsonResponse(w, http.StatusOK, worker)
}

// ListShifts handles GET /api/shifts.
func (h *ManpowerHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := store.ListShifts(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list shifts")
		return
	}
	if shifts == nil {
		shifts = []model.Shift{}
	}
	jsonResponse(w, http.StatusOK, shifts)
}

// CreateShift handles POST /api/shifts.
func (h *ManpowerHandler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req createShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "name, start_time, and end_time are required")
		return
	}

	shift, err := store.CreateShift(r.Context(), h.DB, req.Name, req.StartTime, req.EndTime)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create shift")
		return
	}

	jsonResponse(w, http.StatusCreated, shift)
}

// SubmitAttendance handles POST /api/attendance.
func (h *ManpowerHandler) SubmitAttendance(w http.ResponseWriter, r *http.Request) {
	var req submitAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "date (YYYY-MM-DD), shift_id, and at least one entry are required")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.SubmitAttendance(r.Context(), h.DB, claims.Name, req.Date, req.ShiftID, req.Entries); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to submit attendance")
		return
	}

	slog.Info("attendance submitted", "user", claims.Username,
		"date", req.Date, "shift_id", req.ShiftID, "workers", len(req.Entries))
	jsonResponse(w, http.StatusOK, map[string]any{"recorded": len(req.Entries)})
}

// ListAttendance handles GET /api/attendance.
func (h *ManpowerHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		jsonError(w, http.StatusBadRequest, "date is required")
		return
	}

	var shiftID int64
	if v := q.Get("shift_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid shift_id")
			return
		}
		shiftID = id
	}

	records, err := store.ListAttendance(r.Context(), h.DB, date, shiftID, q.Get("region"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list attendance")
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	jsonResponse(w, http.StatusOK, records)
}
