package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"slotfinder-backend/internal/categories"
	"slotfinder-backend/internal/config"
	"slotfinder-backend/internal/locator"
	"slotfinder-backend/internal/server"
	"slotfinder-backend/internal/storage"
	"slotfinder-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTPPort:    "8080",
		CORSOrigins: "http://localhost:3000",
		DemoMode:    true,
		BoxMin:      validation.BoxMin,
		BoxMax:      validation.BoxMax,
		RowMin:      validation.RowMin,
		RowMax:      validation.RowMax,
		SlotMin:     validation.SlotMin,
		SlotMax:     validation.SlotMax,
		GridBoxes:       validation.DefaultBoxes,
		GridRowsPerBox:  validation.DefaultRowsPerBox,
		GridSlotsPerRow: validation.DefaultSlotsPerRow,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*fiber.App, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore(cfg.Limits(), categories.InferCategoryID)
	mover := locator.NewMover(store, zap.NewNop())
	return server.New(cfg, store, mover, zap.NewNop(), nil), store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func createProduct(t *testing.T, app *fiber.App, name string, box, row, slot int) map[string]any {
	t.Helper()
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": name, "box_no": box, "row_no": row, "slot_no": slot,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["product"].(map[string]any)
}

func TestProductCRUD(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	p := createProduct(t, app, "Hydraulic pump", 1, 1, 1)
	id := p["id"].(string)
	assert.NotEmpty(t, id)

	// Duplicate slot rejected.
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": "Other", "box_no": 1, "row_no": 1, "slot_no": 1,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This location is already occupied", body["error"])

	// Bad name rejected.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": "<bad>", "box_no": 1, "row_no": 1, "slot_no": 2,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Update.
	resp, body = doJSON(t, app, fiber.MethodPut, "/api/products/"+id, fiber.Map{
		"name": "Gear pump",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Gear pump", body["product"].(map[string]any)["name"])

	// Update of an unknown id.
	resp, _ = doJSON(t, app, fiber.MethodPut, "/api/products/missing", fiber.Map{
		"name": "x",
	}, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// List.
	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 1)

	// Delete twice, both succeed.
	for i := 0; i < 2; i++ {
		resp, body = doJSON(t, app, fiber.MethodDelete, "/api/products/"+id, nil, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
	}
}

func TestSearchEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	createProduct(t, app, "Anchor bolt", 1, 1, 1)
	createProduct(t, app, "Bolt cutter", 1, 1, 2)
	createProduct(t, app, "Hydraulic pump", 1, 1, 3)

	// No query, no category: empty by contract.
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/products/search", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 0)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products/search?q=BOLT", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 2)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products/search?category=cat-3", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 1)
}

func TestLookupEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": "Pump", "qr_code": "QR-1", "product_code": "SKU-1",
		"box_no": 1, "row_no": 1, "slot_no": 1,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products/lookup?qr=QR-1", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Pump", body["product"].(map[string]any)["name"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products/lookup?code=SKU-1", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["product"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products/lookup?qr=unknown", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["product"])

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/products/lookup", nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMoveAndHistoryEndpoints(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	p := createProduct(t, app, "Pump", 1, 1, 1)
	createProduct(t, app, "Blocker", 1, 1, 3)
	id := p["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/products/move", fiber.Map{
		"product_id": id, "to_box": 1, "to_row": 1, "to_slot": 2,
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["product"].(map[string]any)["slot_no"])

	// Occupied destination.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/products/move", fiber.Map{
		"product_id": id, "to_box": 1, "to_row": 1, "to_slot": 3,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Missing fields.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/products/move", fiber.Map{
		"product_id": id,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// History lists the single applied move, newest first.
	req := httptest.NewRequest(fiber.MethodGet, "/api/move-history?product_id="+id, nil)
	histResp, err := app.Test(req, -1)
	require.NoError(t, err)
	var moves []map[string]any
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&moves))
	require.Len(t, moves, 1)
	assert.Equal(t, float64(1), moves[0]["from_slot"])
	assert.Equal(t, float64(2), moves[0]["to_slot"])

	// Undo then redo through the API.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/products/move/undo", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["product"].(map[string]any)["slot_no"])

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/products/move/redo", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["product"].(map[string]any)["slot_no"])

	// Nothing left to redo.
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/products/move/redo", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, body["product"])
}

func TestRecordMoveEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/move-history", fiber.Map{
		"product_name": "Pump",
		"from_box":     1, "from_row": 1, "from_slot": 1,
		"to_box": 1, "to_row": 1, "to_slot": 2,
	}, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Pump", body["product_name"])

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/move-history", fiber.Map{
		"notes": "missing required fields",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCategoryEndpoints(t *testing.T) {
	app, store := newTestApp(t, testConfig())
	store.Seed()

	// Seeded defaults are present and counted.
	req := httptest.NewRequest(fiber.MethodGet, "/api/categories", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var cats []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cats))
	require.Len(t, cats, 5)
	total := 0.0
	for _, cat := range cats {
		total += cat["product_count"].(float64)
	}
	assert.Greater(t, total, 0.0)

	// Create, update, fetch, delete.
	createResp, body := doJSON(t, app, fiber.MethodPost, "/api/categories", fiber.Map{
		"name": "Fasteners", "color": "#123456", "icon": "Bolt",
	}, "")
	require.Equal(t, fiber.StatusCreated, createResp.StatusCode)
	catID := body["id"].(string)

	updResp, body := doJSON(t, app, fiber.MethodPut, "/api/categories/"+catID, fiber.Map{
		"color": "#654321",
	}, "")
	assert.Equal(t, fiber.StatusOK, updResp.StatusCode)
	assert.Equal(t, "#654321", body["color"])

	getResp, body := doJSON(t, app, fiber.MethodGet, "/api/categories/"+catID, nil, "")
	assert.Equal(t, fiber.StatusOK, getResp.StatusCode)
	assert.Equal(t, "Fasteners", body["name"])

	delResp, _ := doJSON(t, app, fiber.MethodDelete, "/api/categories/"+catID, nil, "")
	assert.Equal(t, fiber.StatusOK, delResp.StatusCode)

	getResp, _ = doJSON(t, app, fiber.MethodGet, "/api/categories/"+catID, nil, "")
	assert.Equal(t, fiber.StatusNotFound, getResp.StatusCode)

	// Missing required fields.
	badResp, _ := doJSON(t, app, fiber.MethodPost, "/api/categories", fiber.Map{
		"name": "No color",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, badResp.StatusCode)
}

func TestDeleteCategoryWithAssignedProductsRefused(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	_, body := doJSON(t, app, fiber.MethodPost, "/api/categories", fiber.Map{
		"name": "Fasteners", "color": "#123456", "icon": "Bolt",
	}, "")
	catID := body["id"].(string)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": "Bolt", "category_id": catID, "box_no": 1, "row_no": 1, "slot_no": 1,
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/categories/"+catID, nil, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGridConfigEndpoint(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/grid-config", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["boxes"])
	assert.Equal(t, float64(96), body["total_slots"])
	limits := body["limits"].(map[string]any)
	assert.Equal(t, float64(8), limits["boxes"].(map[string]any)["max"])
}

func TestAuthProtectsMutations(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRequired = true
	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	app, _ := newTestApp(t, cfg)

	// Reads stay open.
	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/products", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Mutations without a token are rejected.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": "Pump", "box_no": 1, "row_no": 1, "slot_no": 1,
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Bootstrap the admin, log in, retry with the token.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/register-admin", fiber.Map{
		"name": "Admin", "email": "admin@example.com", "password": "secret123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Second registration is refused.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/register-admin", fiber.Map{
		"name": "Other", "email": "other@example.com", "password": "secret123",
	}, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": "admin@example.com", "password": "secret123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": "admin@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/products", fiber.Map{
		"name": "Pump", "box_no": 1, "row_no": 1, "slot_no": 1,
	}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestDemoResetEndpoint(t *testing.T) {
	app, store := newTestApp(t, testConfig())
	store.Seed()
	createProduct(t, app, "Extra", 8, 12, 12)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/demo/reset", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/products/search?q=Extra", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 0)
}

func TestUnknownRouteStillJSON(t *testing.T) {
	app, _ := newTestApp(t, testConfig())
	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
