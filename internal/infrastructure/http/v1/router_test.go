package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/security"
	"stockbook/internal/domain/auth"
	"stockbook/internal/testutil"
	"stockbook/pkg/logger"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	jwt    *auth.JWTService
}

func newAPI(t *testing.T, inventory map[string]int64) (*apiClient, *testutil.Ledger) {
	t.Helper()
	l := testutil.NewLedger(t, inventory)
	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"), time.Now)

	router := NewRouter(RouterConfig{
		Session:       l.Session,
		IDs:           l.IDs,
		JWT:           jwtSvc,
		Logger:        logger.Nop(),
		StorageDriver: "memory",
		Version:       "test",
	})
	return &apiClient{t: t, router: router, jwt: jwtSvc}, l
}

func (a *apiClient) do(actor *security.Actor, method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		token, _, err := a.jwt.GenerateToken(*actor)
		require.NoError(a.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type orderBody struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Status   string `json:"status"`
	Quantity int64  `json:"quantity"`
}

type errorBody struct {
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

func TestOrderFlow(t *testing.T) {
	api, l := newAPI(t, map[string]int64{testutil.SKUWidget: 25})
	seller, warehouse := testutil.Seller, testutil.Warehouse

	w := api.do(&seller, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer": "ACME", "productId": testutil.SKUWidget, "boxes": 1, "pieces": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[orderBody](t, w)
	assert.Equal(t, "DRAFT", created.Status)
	assert.Equal(t, int64(12), created.Quantity)
	assert.Equal(t, "SO-2026-00001", created.Number)

	w = api.do(&seller, http.MethodPost, "/api/v1/orders/"+created.ID+"/ship", nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "seller may not ship")

	w = api.do(&warehouse, http.MethodPost, "/api/v1/orders/"+created.ID+"/ship", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "draft cannot ship")
	assert.Equal(t, apperror.CodeInvalidTransition, decode[errorBody](t, w).Code)

	w = api.do(&seller, http.MethodPost, "/api/v1/orders/"+created.ID+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(&warehouse, http.MethodPost, "/api/v1/orders/"+created.ID+"/ship", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "SHIPPED", decode[orderBody](t, w).Status)

	w = api.do(&warehouse, http.MethodPost, "/api/v1/orders/"+created.ID+"/ship", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "ship exactly once")

	assert.Equal(t, int64(13), l.Snapshot(t).Inventory[testutil.SKUWidget])

	w = api.do(&seller, http.MethodGet, "/api/v1/orders?status=SHIPPED", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Items []orderBody `json:"items"`
		Count int         `json:"count"`
	}](t, w)
	assert.Equal(t, 1, list.Count)
}

func TestShip_InsufficientStock(t *testing.T) {
	api, _ := newAPI(t, map[string]int64{testutil.SKUWidget: 3})
	seller, warehouse := testutil.Seller, testutil.Warehouse

	w := api.do(&seller, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer": "ACME", "productId": testutil.SKUWidget, "pieces": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[orderBody](t, w).ID
	require.Equal(t, http.StatusOK, api.do(&seller, http.MethodPost, "/api/v1/orders/"+id+"/submit", nil).Code)

	w = api.do(&warehouse, http.MethodPost, "/api/v1/orders/"+id+"/ship", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInsufficientStock, decode[errorBody](t, w).Code)
}

func TestWaste_WarningThenConfirm(t *testing.T) {
	api, l := newAPI(t, map[string]int64{testutil.SKUGadget: 2})
	warehouse := testutil.Warehouse
	body := map[string]any{"productId": testutil.SKUGadget, "quantity": 5, "reason": "expired"}

	w := api.do(&warehouse, http.MethodPost, "/api/v1/waste", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeInsufficientStockWarning, decode[errorBody](t, w).Code)

	body["confirm"] = true
	w = api.do(&warehouse, http.MethodPost, "/api/v1/waste", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(0), l.Snapshot(t).Inventory[testutil.SKUGadget])
}

func TestAuthRequired(t *testing.T) {
	api, _ := newAPI(t, nil)

	w := api.do(nil, http.MethodGet, "/api/v1/inventory", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ghost := security.Actor{ID: "u-ghost", Role: security.RoleAdmin}
	w = api.do(&ghost, http.MethodGet, "/api/v1/inventory", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token for unknown user")
}

func TestValidationAndNotFound(t *testing.T) {
	api, _ := newAPI(t, nil)
	admin := testutil.Admin

	w := api.do(&admin, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer": "ACME", "productId": testutil.SKUWidget, "pieces": 1,
		"overridePrice": "0.50",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "overrideReason", decode[errorBody](t, w).Details["field"])

	w = api.do(&admin, http.MethodGet, "/api/v1/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(&admin, http.MethodGet, "/api/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdjustAndMovements(t *testing.T) {
	api, _ := newAPI(t, map[string]int64{testutil.SKUWidget: 10})
	warehouse := testutil.Warehouse

	w := api.do(&warehouse, http.MethodPost, "/api/v1/inventory/adjust", map[string]any{
		"productId": testutil.SKUWidget, "newQuantity": 4, "reason": "recount",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(&warehouse, http.MethodGet, "/api/v1/movements?productId="+testutil.SKUWidget, nil)
	require.Equal(t, http.StatusOK, w.Code)
	movements := decode[struct {
		Items []struct {
			Type     string `json:"type"`
			Quantity int64  `json:"quantity"`
			Note     string `json:"note"`
		} `json:"items"`
	}](t, w)
	require.Len(t, movements.Items, 1)
	assert.Equal(t, "ADJUST", movements.Items[0].Type)
	assert.Equal(t, int64(6), movements.Items[0].Quantity)
	assert.Equal(t, "-6: recount", movements.Items[0].Note)

	seller := testutil.Seller
	w = api.do(&seller, http.MethodGet, "/api/v1/movements", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth(t *testing.T) {
	api, _ := newAPI(t, nil)

	w := api.do(nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = api.do(nil, http.MethodGet, "/health/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"storage_driver":"memory"`)
}
