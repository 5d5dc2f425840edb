package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/wmspro/wms/internal/model"
	"github.com/wmspro/wms/internal/store"
)

// DashboardHandler serves the summary counts shown on the landing page.
type DashboardHandler struct {
	DB *sql.DB
}

// lowStockThreshold marks central-stock rows worth flagging on the dashboard.
const lowStockThreshold = 5

// Summary handles GET /api/dashboard.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pending, err := store.ListRequests(ctx, h.DB, model.RequestPending, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	approved, err := store.ListRequests(ctx, h.DB, model.RequestApproved, "")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	central, err := store.ListInventory(ctx, h.DB, model.CentralLocation)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	lowStock := 0
	for _, it := range central {
		if it.Quantity <= lowStockThreshold {
			lowStock++
		}
	}

	today := time.Now().Format("2006-01-02")
	presentToday, err := store.CountAttendance(ctx, h.DB, today, "Present")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"pending_requests":    len(pending),
		"approved_requests":   len(approved),
		"central_stock_items": len(central),
		"low_stock_items":     lowStock,
		"present_today":       presentToday,
	})
}
