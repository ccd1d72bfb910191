package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/park-seok-hoon/minishop/internal/domain"
	"github.com/park-seok-hoon/minishop/internal/handlers"
	"github.com/park-seok-hoon/minishop/internal/repository/memory"
	"github.com/park-seok-hoon/minishop/internal/service"
	"github.com/park-seok-hoon/minishop/pkg/httpx"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	orderHandler := handlers.NewOrderHandler(service.NewOrderService(store, nil, nil, nil))

	app := fiber.New()
	orders := app.Group("/api/v1/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Patch("/:id/status", orderHandler.UpdateOrderStatus)
	orders.Post("/:id/cancel", orderHandler.CancelOrder)
	orders.Put("/:id/items", orderHandler.ModifyOrder)

	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, httpx.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope httpx.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func seedCatalogItem(t *testing.T, store *memory.Store, name string, price int64, stock int) *domain.Item {
	t.Helper()
	item := &domain.Item{Name: name, Price: price, StockQuantity: stock}
	require.NoError(t, store.Items().Save(context.Background(), item))
	return item
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)
	item := seedCatalogItem(t, store, "keyboard", 50000, 10)

	status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/orders/", domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	})

	require.Equal(t, http.StatusCreated, status)
	require.True(t, envelope.Success)
	require.NotEmpty(t, envelope.RequestID)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(100000), data["total_price"])
	require.Equal(t, "NEW", data["status"])
}

func TestCreateOrderEndpointMissingUser(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/orders/", domain.CreateOrderRequest{
		Items: []domain.OrderItemRequest{{ItemID: 1, Quantity: 1}},
	})

	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, envelope.Success)
	require.Equal(t, "BAD_REQUEST", envelope.Error.Code)
}

func TestCreateOrderEndpointOutOfStock(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)
	item := seedCatalogItem(t, store, "keyboard", 50000, 1)

	status, envelope := doJSON(t, app, http.MethodPost, "/api/v1/orders/", domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 5}},
	})

	require.Equal(t, http.StatusConflict, status)
	require.False(t, envelope.Success)
	require.Equal(t, "OUT_OF_STOCK", envelope.Error.Code)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	status, envelope := doJSON(t, app, http.MethodGet, "/api/v1/orders/42", nil)

	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "ORDER_NOT_FOUND", envelope.Error.Code)
}

func TestGetOrderEndpointInvalidID(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	status, envelope := doJSON(t, app, http.MethodGet, "/api/v1/orders/abc", nil)

	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "BAD_REQUEST", envelope.Error.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)
	item := seedCatalogItem(t, store, "keyboard", 50000, 10)

	status, created := doJSON(t, app, http.MethodPost, "/api/v1/orders/", domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, status)

	orderID := created.Data.(map[string]interface{})["id"].(float64)

	status, envelope := doJSON(t, app, http.MethodPost,
		"/api/v1/orders/"+jsonNumber(orderID)+"/cancel", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, envelope.Success)

	data := envelope.Data.(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	restored := items[0].(map[string]interface{})
	require.Equal(t, "keyboard", restored["item_name"])
	require.Equal(t, float64(10), restored["stock_after"])

	// A second cancel is rejected.
	status, envelope = doJSON(t, app, http.MethodPost,
		"/api/v1/orders/"+jsonNumber(orderID)+"/cancel", nil)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "ALREADY_CANCELLED", envelope.Error.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)
	item := seedCatalogItem(t, store, "keyboard", 50000, 10)

	status, created := doJSON(t, app, http.MethodPost, "/api/v1/orders/", domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 2}},
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := created.Data.(map[string]interface{})["id"].(float64)

	status, envelope := doJSON(t, app, http.MethodPatch,
		"/api/v1/orders/"+jsonNumber(orderID)+"/status",
		handlers.UpdateStatusRequest{Status: "SHIPPED"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "SHIPPED", envelope.Data.(map[string]interface{})["status"])

	status, envelope = doJSON(t, app, http.MethodPatch,
		"/api/v1/orders/"+jsonNumber(orderID)+"/status",
		handlers.UpdateStatusRequest{Status: "CANCELLED"})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "INVALID_STATUS_TRANSITION", envelope.Error.Code)
}

func TestModifyOrderEndpoint(t *testing.T) {
	t.Parallel()

	app, store := newTestApp(t)
	item := seedCatalogItem(t, store, "keyboard", 10000, 10)

	status, created := doJSON(t, app, http.MethodPost, "/api/v1/orders/", domain.CreateOrderRequest{
		UserID: 1,
		Items:  []domain.OrderItemRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, status)
	data := created.Data.(map[string]interface{})
	orderID := data["id"].(float64)
	lineID := data["items"].([]interface{})[0].(map[string]interface{})["id"].(float64)

	status, envelope := doJSON(t, app, http.MethodPut,
		"/api/v1/orders/"+jsonNumber(orderID)+"/items",
		domain.ModifyOrderRequest{Items: []domain.ModifyOrderItem{
			{OrderItemID: int64(lineID), ItemID: item.ID, Quantity: 5},
		}})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(50000), envelope.Data.(map[string]interface{})["total_price"])
}

func jsonNumber(f float64) string {
	return strconv.FormatInt(int64(f), 10)
}
