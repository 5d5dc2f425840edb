package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wmspro/wms/internal/model"
	"github.com/wmspro/wms/internal/store"
)

// InventoryHandler handles stock item and stock log endpoints.
type InventoryHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Location string `json:"location" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Unit     string `json:"unit" validate:"required"`
}

type adjustStockRequest struct {
	ItemName string `json:"item_name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Delta    int    `json:"delta" validate:"required"`
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListInventory(r.Context(), h.DB, r.URL.Query().Get("location"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	if items == nil {
		items = []model.StockItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "name, category, location, and unit are required; quantity must not be negative")
		return
	}

	item, err := store.CreateStockItem(r.Context(), h.DB, req.Name, req.Category, req.Location, req.Quantity, req.Unit)
	if err != nil {
		storeError(w, err)
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("stock item created", "user", claims.Username,
		"item", item.Name, "location", item.Location, "quantity", item.Quantity)
	jsonResponse(w, http.StatusCreated, item)
}

// Adjust handles POST /api/inventory/adjust.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "item_name, location, and a non-zero delta are required")
		return
	}

	claims := GetClaims(r.Context())
	newQty, err := store.AdjustStock(r.Context(), h.DB, claims.Name, req.ItemName, req.Location, req.Delta)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("stock adjusted", "user", claims.Username,
		"item", req.ItemName, "location", req.Location, "delta", req.Delta, "new_quantity", newQty)
	jsonResponse(w, http.StatusOK, map[string]any{"item_name": req.ItemName, "location": req.Location, "quantity": newQty})
}

// ListLogs handles GET /api/logs.
func (h *InventoryHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs, err := store.ListStockLogs(r.Context(), h.DB, q.Get("item_name"), q.Get("location"), 100)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list stock logs")
		return
	}

	// Render the structured action as display text at the boundary.
	type logView struct {
		model.StockLog
		ActionLabel string `json:"action_label"`
	}
	views := make([]logView, 0, len(logs))
	for _, l := range logs {
		views = append(views, logView{StockLog: l, ActionLabel: l.ActionLabel()})
	}
	jsonResponse(w, http.StatusOK, views)
}

// TransfersHandler handles stock transfer endpoints.
type TransfersHandler struct {
	DB *sql.DB
}

type createTransferRequest struct {
	ItemName     string `json:"item_name" validate:"required"`
	FromLocation string `json:"from_location" validate:"required"`
	ToLocation   string `json:"to_location" validate:"required,nefield=FromLocation"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
}

// Create handles POST /api/transfers.
func (h *TransfersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		jsonError(w, http.StatusBadRequest, "item_name, distinct from/to locations, and a positive quantity are required")
		return
	}

	claims := GetClaims(r.Context())
	summary, err := store.TransferStock(r.Context(), h.DB, claims.Name, req.ItemName, req.FromLocation, req.ToLocation, req.Quantity)
	if err != nil {
		storeError(w, err)
		return
	}

	slog.Info("stock transferred", "user", claims.Username,
		"item", summary.ItemName, "quantity", summary.Quantity,
		"from", summary.FromLocation, "to", summary.ToLocation)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"message": fmt.Sprintf("Transferred %d %s of %s", summary.Quantity, summary.Unit, summary.ItemName),
		"summary": summary,
	})
}
