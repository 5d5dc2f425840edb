package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wmspro/wms/internal/db"
	"github.com/wmspro/wms/internal/model"
	"github.com/wmspro/wms/internal/store"
)

const testJWTSecret = "test-secret"

type testServer struct {
	*httptest.Server
	db     *sql.DB
	tokens map[string]string // role -> bearer token
}

// setupTestServer starts an API server with one user per role and
// returns a logged-in token for each.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	database := db.NewTestDB(t)
	server := httptest.NewServer(NewRouter(database, testJWTSecret))
	t.Cleanup(server.Close)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	users := []struct{ username, name, role, region string }{
		{"maha", "Maha", model.RoleManager, ""},
		{"omar", "Omar", model.RoleSupervisor, "ICU 28"},
		{"karim", "Karim", model.RoleStorekeeper, ""},
	}

	ts := &testServer{Server: server, db: database, tokens: map[string]string{}}
	for _, u := range users {
		_, err := store.CreateUser(ctx, database, u.username, string(hash), u.name, u.role, u.region, nil)
		require.NoError(t, err)
		ts.tokens[u.role] = login(t, server, u.username, "password123")
	}
	return ts
}

func login(t *testing.T, server *httptest.Server, username, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed for %s", username)

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	require.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, bodyReader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "maha", "password": "wrong"})
	resp, err := http.Post(ts.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnauthenticatedRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.do(t, "GET", "/api/inventory", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleEnforcement(t *testing.T) {
	ts := setupTestServer(t)

	// Supervisors cannot create stock items.
	resp := ts.do(t, "POST", "/api/inventory", ts.tokens[model.RoleSupervisor], map[string]any{
		"name": "Gloves", "category": "Safety", "location": "NSTC", "quantity": 10, "unit": "Piece",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Storekeepers cannot approve requests.
	resp = ts.do(t, "POST", "/api/requests/1/approve", ts.tokens[model.RoleStorekeeper], map[string]any{"quantity": 1})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Managers cannot issue requests.
	resp = ts.do(t, "POST", "/api/requests/1/issue", ts.tokens[model.RoleManager], map[string]any{
		"item_name": "Gloves", "quantity": 1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Managers cannot create requests (supervisors only).
	resp = ts.do(t, "POST", "/api/requests", ts.tokens[model.RoleManager], map[string]any{
		"item_name": "Gloves", "quantity": 1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequestWorkflowEndToEnd(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.tokens[model.RoleManager]
	supervisor := ts.tokens[model.RoleSupervisor]
	storekeeper := ts.tokens[model.RoleStorekeeper]

	// Manager stocks the central location.
	resp := ts.do(t, "POST", "/api/inventory", manager, map[string]any{
		"name": "Masks", "category": "Safety", "location": "NSTC", "quantity": 8, "unit": "Piece",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Supervisor requests 10.
	resp = ts.do(t, "POST", "/api/requests", supervisor, map[string]any{"item_name": "Masks", "quantity": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	request := decodeBody[model.Request](t, resp)
	assert.Equal(t, model.RequestPending, request.Status)
	assert.Equal(t, "ICU 28", request.Region)

	// Manager approves with a reduced quantity.
	resp = ts.do(t, "POST", "/api/requests/1/approve", manager, map[string]any{"quantity": 8, "notes": "cut to stock"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Storekeeper issues.
	resp = ts.do(t, "POST", "/api/requests/1/issue", storekeeper, map[string]any{"item_name": "Masks", "quantity": 8})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Central stock is now empty; the request is Issued.
	resp = ts.do(t, "GET", "/api/inventory?location=NSTC", supervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := decodeBody[[]model.StockItem](t, resp)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Quantity)
	assert.Equal(t, model.StockStatusDepleted, items[0].Status)

	resp = ts.do(t, "GET", "/api/requests", supervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requests := decodeBody[[]model.Request](t, resp)
	require.Len(t, requests, 1)
	assert.Equal(t, model.RequestIssued, requests[0].Status)

	// Issuing again is an illegal transition.
	resp = ts.do(t, "POST", "/api/requests/1/issue", storekeeper, map[string]any{"item_name": "Masks", "quantity": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestTransferEndpoint(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.tokens[model.RoleManager]

	resp := ts.do(t, "POST", "/api/inventory", manager, map[string]any{
		"name": "Gloves", "category": "Safety", "location": "NSTC", "quantity": 20, "unit": "Piece",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, "POST", "/api/transfers", manager, map[string]any{
		"item_name": "Gloves", "from_location": "NSTC", "to_location": "SNC", "quantity": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Insufficient stock is a conflict, not a mutation.
	resp = ts.do(t, "POST", "/api/transfers", manager, map[string]any{
		"item_name": "Gloves", "from_location": "NSTC", "to_location": "SNC", "quantity": 50,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Same from/to fails validation.
	resp = ts.do(t, "POST", "/api/transfers", manager, map[string]any{
		"item_name": "Gloves", "from_location": "NSTC", "to_location": "NSTC", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The audit log shows the paired entries with display labels.
	resp = ts.do(t, "GET", "/api/logs", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decodeBody[[]map[string]any](t, resp)
	require.Len(t, logs, 2)

	labels := []string{logs[0]["action_label"].(string), logs[1]["action_label"].(string)}
	assert.Contains(t, labels, "Transfer Out to SNC")
	assert.Contains(t, labels, "Transfer In from NSTC")
}

func TestUpdateProfileEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.do(t, "PUT", "/api/auth/profile", ts.tokens[model.RoleSupervisor], map[string]any{
		"name": "Omar K.", "region": "O.R",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The stored account reflects the change.
	resp = ts.do(t, "GET", "/api/users", ts.tokens[model.RoleManager], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]model.User](t, resp)

	var omar *model.User
	for i := range users {
		if users[i].Username == "omar" {
			omar = &users[i]
		}
	}
	require.NotNil(t, omar)
	assert.Equal(t, "Omar K.", omar.Name)
	assert.Equal(t, "O.R", omar.Region)

	// Name is mandatory.
	resp = ts.do(t, "PUT", "/api/auth/profile", ts.tokens[model.RoleSupervisor], map[string]any{"region": "O.R"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAttendanceEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.tokens[model.RoleManager]
	supervisor := ts.tokens[model.RoleSupervisor]

	resp := ts.do(t, "POST", "/api/shifts", manager, map[string]any{
		"name": "Morning", "start_time": "07:00", "end_time": "15:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	shift := decodeBody[model.Shift](t, resp)

	resp = ts.do(t, "POST", "/api/workers", manager, map[string]any{
		"name": "Ahmed", "emp_id": "1001", "region": "ICU 28", "shift_id": shift.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	worker := decodeBody[model.Worker](t, resp)

	resp = ts.do(t, "POST", "/api/attendance", supervisor, map[string]any{
		"date":     "2026-08-31",
		"shift_id": shift.ID,
		"entries":  []map[string]any{{"worker_id": worker.ID, "status": "Present"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, "GET", "/api/attendance?date=2026-08-31", supervisor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := decodeBody[[]model.Attendance](t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "Ahmed", records[0].WorkerName)
	assert.Equal(t, "Omar", records[0].Supervisor)
}

func TestDashboardSummary(t *testing.T) {
	ts := setupTestServer(t)
	manager := ts.tokens[model.RoleManager]
	supervisor := ts.tokens[model.RoleSupervisor]

	resp := ts.do(t, "POST", "/api/inventory", manager, map[string]any{
		"name": "Gloves", "category": "Safety", "location": "NSTC", "quantity": 3, "unit": "Piece",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, "POST", "/api/requests", supervisor, map[string]any{"item_name": "Gloves", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, "GET", "/api/dashboard", manager, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody[map[string]any](t, resp)
	assert.EqualValues(t, 1, summary["pending_requests"])
	assert.EqualValues(t, 1, summary["central_stock_items"])
	assert.EqualValues(t, 1, summary["low_stock_items"])
}
