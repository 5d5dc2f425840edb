package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/wmspro/wms/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	inventoryHandler := &InventoryHandler{DB: db}
	transfersHandler := &TransfersHandler{DB: db}
	requestsHandler := &RequestsHandler{DB: db}
	manpowerHandler := &ManpowerHandler{DB: db}
	dashboardHandler := &DashboardHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret)
	manager := RequireRole(model.RoleManager)
	storekeeper := RequireRole(model.RoleStorekeeper)
	supervisors := RequireRole(model.RoleSupervisor, model.RoleNightSupervisor)
	stockWriters := RequireRole(model.RoleManager, model.RoleStorekeeper)
	attendanceWriters := RequireRole(model.RoleManager, model.RoleSupervisor, model.RoleNightSupervisor)

	// Public: login, rate-limited per IP against brute force.
	loginLimiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
	mux.Handle("POST /api/auth/login", loginLimiter(http.HandlerFunc(authHandler.Login)))

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("PUT /api/auth/profile", authMW(http.HandlerFunc(authHandler.UpdateProfile)))

	// Users (manager only).
	mux.Handle("GET /api/users", authMW(manager(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(manager(http.HandlerFunc(usersHandler.Create))))

	// Inventory: read (all roles), create (manager), adjust (manager or storekeeper).
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory", authMW(manager(http.HandlerFunc(inventoryHandler.Create))))
	mux.Handle("POST /api/inventory/adjust", authMW(stockWriters(http.HandlerFunc(inventoryHandler.Adjust))))

	// Transfers and the audit log.
	mux.Handle("POST /api/transfers", authMW(stockWriters(http.HandlerFunc(transfersHandler.Create))))
	mux.Handle("GET /api/logs", authMW(manager(http.HandlerFunc(inventoryHandler.ListLogs))))

	// Requests: supervisors create, managers approve/reject, storekeepers issue.
	mux.Handle("POST /api/requests", authMW(supervisors(http.HandlerFunc(requestsHandler.Create))))
	mux.Handle("GET /api/requests", authMW(http.HandlerFunc(requestsHandler.List)))
	mux.Handle("POST /api/requests/{id}/approve", authMW(manager(http.HandlerFunc(requestsHandler.Approve))))
	mux.Handle("POST /api/requests/{id}/reject", authMW(manager(http.HandlerFunc(requestsHandler.Reject))))
	mux.Handle("POST /api/requests/{id}/issue", authMW(storekeeper(http.HandlerFunc(requestsHandler.Issue))))

	// Manpower: workers, shifts, attendance.
	mux.Handle("GET /api/workers", authMW(http.HandlerFunc(manpowerHandler.ListWorkers)))
	mux.Handle("POST /api/workers", authMW(manager(http.HandlerFunc(manpowerHandler.CreateWorker))))
	mux.Handle("PUT /api/workers/{id}", authMW(manager(http.HandlerFunc(manpowerHandler.UpdateWorker))))
	mux.Handle("GET /api/shifts", authMW(http.HandlerFunc(manpowerHandler.ListShifts)))
	mux.Handle("POST /api/shifts", authMW(manager(http.HandlerFunc(manpowerHandler.CreateShift))))
	mux.Handle("POST /api/attendance", authMW(attendanceWriters(http.HandlerFunc(manpowerHandler.SubmitAttendance))))
	mux.Handle("GET /api/attendance", authMW(http.HandlerFunc(manpowerHandler.ListAttendance)))

	// Dashboard summary.
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(dashboardHandler.Summary)))

	return mux
}
