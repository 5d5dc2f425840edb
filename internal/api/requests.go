package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wmspro/wms/internal/model"
	"github.com/wmspro/wms/internal/store"
)

// RequestsHandler handles the request lifecycle endpoints.
type RequestsHandler struct {
	DB *sql.DB
}

type createRequestRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type approveRequestRequest struct {
	Quantity int    `json:"quantity" validate:"gt=0"`
	Notes    string `json:"notes"`
}

type rejectRequestRequest struct {
	Notes string `json:"notes"`
}

type issueRequestRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// Create handles POST /api/requests.
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "item_name and a positive quantity are required")
		return
	}

	claims := GetClaims(r.Context())
	request, err := store.CreateRequest(r.Context(), h.DB, claims.Name, claims.Region, req.ItemName, req.Quantity)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("request created", "user", claims.Username,
		"item", request.ItemName, "quantity", request.Quantity, "req_id", request.ReqID)
	jsonResponse(w, http.StatusCreated, request)
}

// List handles GET /api/requests.
func (h *RequestsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Supervisors only see their own requests.
	supervisorName := q.Get("supervisor")
	claims := GetClaims(r.Context())
	if model.IsSupervisor(claims.Role) {
		supervisorName = claims.Name
	}

	requests, err := store.ListRequests(r.Context(), h.DB, q.Get("status"), supervisorName)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}
	if requests == nil {
		requests = []model.Request{}
	}
	jsonResponse(w, http.StatusOK, requests)
}

// Approve handles POST /api/requests/{id}/approve.
func (h *RequestsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	reqID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req approveRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "a positive quantity is required")
		return
	}

	if err := store.ApproveRequest(r.Context(), h.DB, reqID, req.Quantity, req.Notes); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("request approved", "user", claims.Username, "req_id", reqID, "quantity", req.Quantity)
	jsonResponse(w, http.StatusOK, map[string]string{"status": model.RequestApproved})
}

// Reject handles POST /api/requests/{id}/reject.
func (h *RequestsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	reqID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req rejectRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.RejectRequest(r.Context(), h.DB, reqID, req.Notes); err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("request rejected", "user", claims.Username, "req_id", reqID)
	jsonResponse(w, http.StatusOK, map[string]string{"status": model.RequestRejected})
}

// Issue handles POST /api/requests/{id}/issue.
func (h *RequestsHandler) Issue(w http.ResponseWriter, r *http.Request) {
	reqID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req issueRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "item_name and a positive quantity are required")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.IssueRequest(r.Context(), h.DB, claims.Name, reqID, req.ItemName, req.Quantity); err != nil {
		storeError(w, err)
		return
	}

	slog.Info("request issued", "user", claims.Username,
		"req_id", reqID, "item", req.ItemName, "quantity", req.Quantity)
	jsonResponse(w, http.StatusOK, map[string]string{"status": model.RequestIssued})
}
