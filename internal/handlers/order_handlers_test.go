package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/parthbuilds/Shubha-Kuteer/internal/models"
	"github.com/parthbuilds/Shubha-Kuteer/internal/payment"
	"github.com/parthbuilds/Shubha-Kuteer/internal/repository"
)

type fakeGateway struct {
	nextID     int
	lastAmount int64
	lastRecv   string
	failCreate bool
	orders     map[string]payment.GatewayOrder
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{orders: make(map[string]payment.GatewayOrder)}
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (payment.GatewayOrder, error) {
	if f.failCreate {
		return nil, &payment.GatewayError{Op: "create order", Err: errors.New("gateway rejected")}
	}
	f.nextID++
	f.lastAmount = amount
	f.lastRecv = receipt
	order := payment.GatewayOrder{
		"id":       fmt.Sprintf("order_fake%03d", f.nextID),
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"status":   "created",
	}
	f.orders[order.ID()] = order
	return order, nil
}

func (f *fakeGateway) FetchOrder(ctx context.Context, gatewayOrderID string) (payment.GatewayOrder, error) {
	order, ok := f.orders[gatewayOrderID]
	if !ok {
		return nil, &payment.GatewayError{Op: "fetch order", Err: errors.New("no such order")}
	}
	return order, nil
}

type orderTestEnv struct {
	router  *gin.Engine
	repo    repository.OrderRepository
	gateway *fakeGateway
}

func setupOrderEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewOrderRepository(db)
	gateway := newFakeGateway()

	router := gin.New()
	router.POST("/api/orders/create-order", CreateOrder(repo, gateway, "rzp_test_key", "INR", 5*time.Second))
	router.POST("/api/orders/capture-order", CaptureOrder(repo))
	router.GET("/api/orders", GetOrders(repo))
	router.GET("/api/orders/:id", GetOrder(repo))
	router.DELETE("/api/orders/:id", DeleteOrder(repo))

	return &orderTestEnv{router: router, repo: repo, gateway: gateway}
}

func (env *orderTestEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %s: %v", w.Body.String(), err)
	}
	return body
}

func TestCreateOrderForwardsMinorUnits(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "POST", "/api/orders/create-order", gin.H{
		"first_name": "Asha",
		"email":      "a@x.com",
		"amount":     500,
		"products":   []gin.H{{"id": 1, "qty": 2, "price": 250}},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.gateway.lastAmount != 50000 {
		t.Fatalf("expected amount forwarded as 50000 minor units, got %d", env.gateway.lastAmount)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body)
	}
	if body["key"] != "rzp_test_key" {
		t.Fatalf("expected gateway key in response, got %v", body["key"])
	}

	gatewayOrder, ok := body["razorpay_order"].(map[string]interface{})
	if !ok || gatewayOrder["id"] == "" {
		t.Fatalf("expected razorpay_order in response, got %v", body["razorpay_order"])
	}

	order, err := env.repo.GetByGatewayOrderID(context.Background(), gatewayOrder["id"].(string))
	if err != nil {
		t.Fatalf("order row missing: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
}

func TestCreateOrderMissingEmail(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "POST", "/api/orders/create-order", gin.H{"amount": 500})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	orders, err := env.repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("validation failure must write no rows, got %d", len(orders))
	}
}

func TestCreateOrderGatewayFailureWritesNothing(t *testing.T) {
	env := setupOrderEnv(t)
	env.gateway.failCreate = true

	w := env.do(t, "POST", "/api/orders/create-order", gin.H{
		"first_name": "Asha",
		"email":      "a@x.com",
		"amount":     500,
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	orders, _ := env.repo.List(context.Background())
	if len(orders) != 0 {
		t.Fatalf("gateway failure must write no rows, got %d", len(orders))
	}
}

func TestCaptureOrderIdempotent(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "POST", "/api/orders/create-order", gin.H{
		"first_name": "Asha",
		"email":      "a@x.com",
		"amount":     500,
		"products":   []gin.H{{"id": 1, "qty": 2}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create failed: %d", w.Code)
	}
	created := decodeBody(t, w)
	gatewayOrderID := created["razorpay_order"].(map[string]interface{})["id"].(string)

	capture := gin.H{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": "pay_abc",
		"payment_status":      "captured",
	}

	w = env.do(t, "POST", "/api/orders/capture-order", capture)
	if w.Code != http.StatusOK {
		t.Fatalf("capture failed: %d %s", w.Code, w.Body.String())
	}

	order, err := env.repo.GetByGatewayOrderID(context.Background(), gatewayOrderID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if order.Status != models.OrderStatusCaptured || order.RazorpayPaymentID != "pay_abc" {
		t.Fatalf("unexpected order state: %+v", order)
	}

	// identical capture again must succeed without flapping
	w = env.do(t, "POST", "/api/orders/capture-order", capture)
	if w.Code != http.StatusOK {
		t.Fatalf("duplicate capture should be a no-op 200, got %d: %s", w.Code, w.Body.String())
	}

	again, _ := env.repo.GetByGatewayOrderID(context.Background(), gatewayOrderID)
	if again.Status != models.OrderStatusCaptured || again.RazorpayPaymentID != "pay_abc" {
		t.Fatalf("duplicate capture changed state: %+v", again)
	}
}

func TestCaptureOrderConflict(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "POST", "/api/orders/create-order", gin.H{
		"first_name": "Asha",
		"email":      "a@x.com",
		"amount":     500,
	})
	gatewayOrderID := decodeBody(t, w)["razorpay_order"].(map[string]interface{})["id"].(string)

	w = env.do(t, "POST", "/api/orders/capture-order", gin.H{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": "pay_abc",
		"payment_status":      "captured",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("capture failed: %d", w.Code)
	}

	w = env.do(t, "POST", "/api/orders/capture-order", gin.H{
		"razorpay_order_id": gatewayOrderID,
		"payment_status":    "failed",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for conflicting terminal status, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCaptureOrderUnknownReference(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "POST", "/api/orders/capture-order", gin.H{
		"razorpay_order_id": "order_nope",
		"payment_status":    "captured",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	orders, _ := env.repo.List(context.Background())
	if len(orders) != 0 {
		t.Fatalf("unknown reference must mutate nothing, got %d rows", len(orders))
	}
}

func TestOrderDetailRoundTripsItems(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "POST", "/api/orders/create-order", gin.H{
		"first_name": "Asha",
		"email":      "a@x.com",
		"amount":     750,
		"products": []gin.H{
			{"id": 1, "name": "Saree", "qty": 2, "price": 250, "variant": "red"},
			{"id": 9, "qty": 1, "price": 250},
		},
	})
	orderID := decodeBody(t, w)["order_id"].(float64)

	w = env.do(t, "GET", fmt.Sprintf("/api/orders/%d", int(orderID)), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail failed: %d", w.Code)
	}

	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	want := models.OrderItem{ProductID: 1, Name: "Saree", Quantity: 2, Price: 250, Variant: "red"}
	if order.Items[0] != want {
		t.Fatalf("item snapshot changed: %+v", order.Items[0])
	}
}

func TestDeleteMissingOrder(t *testing.T) {
	env := setupOrderEnv(t)

	w := env.do(t, "DELETE", "/api/orders/424242", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
