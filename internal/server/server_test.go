package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_server "github.com/greenharvest/marketplace/internal/server/mocks"
	"github.com/greenharvest/marketplace/internal/storage"
	"github.com/greenharvest/marketplace/internal/workflow"
)

func newTestServer(t *testing.T) (*Server, *mock_server.MockStorage, *mock_server.MockUserRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUserRepo := mock_server.NewMockUserRepo(ctrl)
	return New(mockStorage, mockUserRepo, zap.NewNop()), mockStorage, mockUserRepo
}

func TestHandleSubmitRequest(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(mockStorage *mock_server.MockStorage)
		expectedStatus int
	}{
		{
			name: "successful submission",
			requestBody: map[string]interface{}{
				"farmer_id":    "farmer-1",
				"product_name": "Tomatoes",
				"category":     "vegetables",
				"quantity":     50,
				"price":        2.5,
			},
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					SubmitRequest(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, req workflow.ProductRequest) (*workflow.ProductRequest, error) {
						assert.Equal(t, "farmer-1", req.FarmerID)
						assert.Equal(t, "Tomatoes", req.ProductName)
						req.ID = "req-1"
						req.Status = workflow.RequestPending
						return &req, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing farmer id",
			requestBody: map[string]interface{}{
				"product_name": "Tomatoes",
				"quantity":     50,
			},
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "zero quantity",
			requestBody: map[string]interface{}{
				"farmer_id":    "farmer-1",
				"product_name": "Tomatoes",
				"quantity":     0,
			},
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "negative price",
			requestBody: map[string]interface{}{
				"farmer_id":    "farmer-1",
				"product_name": "Tomatoes",
				"quantity":     10,
				"price":        -1,
			},
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage error",
			requestBody: map[string]interface{}{
				"farmer_id":    "farmer-1",
				"product_name": "Tomatoes",
				"quantity":     50,
			},
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					SubmitRequest(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStorage, _ := newTestServer(t)
			tc.setupMocks(mockStorage)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			server.handleSubmitRequest(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleResolveRequest(t *testing.T) {
	tests := []struct {
		name           string
		transition     workflow.Transition
		requestBody    string
		setupMocks     func(mockStorage *mock_server.MockStorage)
		expectedStatus int
	}{
		{
			name:        "approve with notes",
			transition:  workflow.TransitionApprove,
			requestBody: `{"notes":"Approved, start shipping"}`,
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					ResolveRequest(gomock.Any(), "req-1", workflow.TransitionApprove, "Approved, start shipping").
					Return(&workflow.ProductRequest{
						ID:     "req-1",
						Status: workflow.RequestApproved,
						Notes:  "Approved, start shipping",
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "reject without body",
			transition:  workflow.TransitionReject,
			requestBody: "",
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					ResolveRequest(gomock.Any(), "req-1", workflow.TransitionReject, "").
					Return(&workflow.ProductRequest{ID: "req-1", Status: workflow.RequestRejected}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "already resolved",
			transition:  workflow.TransitionApprove,
			requestBody: "{}",
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					ResolveRequest(gomock.Any(), "req-1", workflow.TransitionApprove, "").
					Return(nil, fmt.Errorf("%w: request is approved", workflow.ErrInvalidTransition))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "request not found",
			transition:  workflow.TransitionApprove,
			requestBody: "{}",
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					ResolveRequest(gomock.Any(), "req-1", workflow.TransitionApprove, "").
					Return(nil, fmt.Errorf("%w: request req-1", workflow.ErrRecordNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStorage, _ := newTestServer(t)
			tc.setupMocks(mockStorage)

			req := httptest.NewRequest(http.MethodPost, "/requests/req-1/approve", bytes.NewReader([]byte(tc.requestBody)))
			req.SetPathValue("id", "req-1")
			rr := httptest.NewRecorder()

			server.handleResolveRequest(tc.transition)(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleCreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStorage *mock_server.MockStorage)
		expectedStatus int
	}{
		{
			name:        "successful creation",
			requestBody: `{"customer_id":"customer-1","items":[{"product_id":"p1","quantity":3,"price":2.5,"farmer_id":"farmer-1"}]}`,
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, order workflow.Order) (*workflow.Order, error) {
						assert.Equal(t, "customer-1", order.CustomerID)
						require.Len(t, order.Items, 1)
						order.ID = "order-1"
						order.Status = workflow.OrderPending
						order.TotalAmount = 7.5
						return &order, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing customer id",
			requestBody:    `{"items":[{"product_id":"p1","quantity":1,"price":1}]}`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no items",
			requestBody:    `{"customer_id":"customer-1","items":[]}`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			requestBody:    `{not json`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStorage, _ := newTestServer(t)
			tc.setupMocks(mockStorage)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(tc.requestBody)))
			rr := httptest.NewRecorder()

			server.handleCreateOrder(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleCreateFarmerOrder(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStorage *mock_server.MockStorage)
		expectedStatus int
	}{
		{
			name:        "successful creation",
			requestBody: `{"order_id":"order-1","farmer_id":"farmer-1","notes":"extra crate"}`,
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					CreateFarmerOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, fo workflow.FarmerOrder) (*workflow.FarmerOrder, error) {
						assert.Equal(t, "order-1", fo.OrderID)
						assert.Equal(t, "farmer-1", fo.FarmerID)
						assert.Equal(t, "extra crate", fo.Notes)
						fo.ID = "fo-1"
						fo.Status = workflow.FarmerOrderPending
						return &fo, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing order id",
			requestBody:    `{"farmer_id":"farmer-1"}`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing farmer id",
			requestBody:    `{"order_id":"order-1"}`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unknown order",
			requestBody: `{"order_id":"order-404","farmer_id":"farmer-1"}`,
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					CreateFarmerOrder(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: order order-404", workflow.ErrRecordNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body",
			requestBody:    `{not json`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStorage, _ := newTestServer(t)
			tc.setupMocks(mockStorage)

			req := httptest.NewRequest(http.MethodPost, "/farmer-orders", bytes.NewReader([]byte(tc.requestBody)))
			rr := httptest.NewRecorder()

			server.handleCreateFarmerOrder(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		setupMocks     func(mockStorage *mock_server.MockStorage)
		expectedStatus int
	}{
		{
			name:        "confirm pending order",
			requestBody: `{"status":"confirmed"}`,
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					UpdateOrderStatus(gomock.Any(), "order-1", workflow.OrderConfirmed).
					Return(&workflow.Order{ID: "order-1", Status: workflow.OrderConfirmed}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "illegal move is a conflict",
			requestBody: `{"status":"delivered"}`,
			setupMocks: func(mockStorage *mock_server.MockStorage) {
				mockStorage.EXPECT().
					UpdateOrderStatus(gomock.Any(), "order-1", workflow.OrderDelivered).
					Return(nil, fmt.Errorf("%w: order cannot move from pending to delivered", workflow.ErrInvalidTransition))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing status",
			requestBody:    `{}`,
			setupMocks:     func(*mock_server.MockStorage) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, mockStorage, _ := newTestServer(t)
			tc.setupMocks(mockStorage)

			req := httptest.NewRequest(http.MethodPut, "/orders/order-1/status", bytes.NewReader([]byte(tc.requestBody)))
			req.SetPathValue("id", "order-1")
			rr := httptest.NewRecorder()

			server.handleUpdateOrderStatus(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleFarmerOrderTransition(t *testing.T) {
	t.Run("confirm", func(t *testing.T) {
		server, mockStorage, _ := newTestServer(t)

		mockStorage.EXPECT().
			AdvanceFarmerOrder(gomock.Any(), "fo-1", workflow.TransitionConfirm).
			Return(&workflow.FarmerOrder{ID: "fo-1", Status: workflow.FarmerOrderConfirmed}, nil)

		req := httptest.NewRequest(http.MethodPost, "/farmer-orders/fo-1/confirm", nil)
		req.SetPathValue("id", "fo-1")
		rr := httptest.NewRecorder()

		server.handleFarmerOrderTransition(workflow.TransitionConfirm)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var fo workflow.FarmerOrder
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fo))
		assert.Equal(t, workflow.FarmerOrderConfirmed, fo.Status)
	})

	t.Run("not found", func(t *testing.T) {
		server, mockStorage, _ := newTestServer(t)

		mockStorage.EXPECT().
			AdvanceFarmerOrder(gomock.Any(), "fo-404", workflow.TransitionShip).
			Return(nil, fmt.Errorf("%w: farmer order fo-404", workflow.ErrRecordNotFound))

		req := httptest.NewRequest(http.MethodPost, "/farmer-orders/fo-404/ship", nil)
		req.SetPathValue("id", "fo-404")
		rr := httptest.NewRecorder()

		server.handleFarmerOrderTransition(workflow.TransitionShip)(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleAdjustQuantity(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server, mockStorage, _ := newTestServer(t)

		mockStorage.EXPECT().
			AdjustAvailabilityQuantity(gomock.Any(), "av-1", 3).
			Return(&workflow.ProductAvailability{ID: "av-1", Quantity: 3, Status: workflow.LowStock}, nil)

		req := httptest.NewRequest(http.MethodPut, "/availability/av-1/quantity", bytes.NewReader([]byte(`{"quantity":3}`)))
		req.SetPathValue("id", "av-1")
		rr := httptest.NewRecorder()

		server.handleAdjustQuantity(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var av workflow.ProductAvailability
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &av))
		assert.Equal(t, workflow.LowStock, av.Status)
	})
}

func TestHandleLoyalty(t *testing.T) {
	server, mockStorage, _ := newTestServer(t)

	mockStorage.EXPECT().
		GetLoyaltySummary(gomock.Any(), "customer-1").
		Return(&storage.LoyaltySummary{
			CustomerID:    "customer-1",
			TotalSpent:    1600,
			Tier:          "gold",
			NextThreshold: 3000,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/customers/customer-1/loyalty", nil)
	req.SetPathValue("customerID", "customer-1")
	rr := httptest.NewRecorder()

	server.handleLoyalty(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var summary storage.LoyaltySummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 1600.0, summary.TotalSpent)
	assert.Equal(t, "gold", string(summary.Tier))
}

func TestHandleHistory(t *testing.T) {
	server, mockStorage, _ := newTestServer(t)

	mockStorage.EXPECT().
		GetHistory(gomock.Any(), storage.EntityOrder, "order-1").
		Return([]storage.HistoryEntry{{Status: "pending"}, {Status: "confirmed"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/order-1/history", nil)
	req.SetPathValue("id", "order-1")
	rr := httptest.NewRecorder()

	server.handleHistory(storage.EntityOrder)(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var entries []storage.HistoryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "confirmed", entries[1].Status)
}

func TestFarmerOrderCreateRouting(t *testing.T) {
	server, mockStorage, mockUserRepo := newTestServer(t)

	mockUserRepo.EXPECT().
		ValidateUser(gomock.Any(), "admin", "secret").
		Return(true, nil)
	mockStorage.EXPECT().
		CreateFarmerOrder(gomock.Any(), gomock.Any()).
		Return(&workflow.FarmerOrder{ID: "fo-1", OrderID: "order-1", FarmerID: "farmer-1", Status: workflow.FarmerOrderPending}, nil)

	body := bytes.NewReader([]byte(`{"order_id":"order-1","farmer_id":"farmer-1"}`))
	req := httptest.NewRequest(http.MethodPost, "/farmer-orders", body)
	req.SetBasicAuth("admin", "secret")
	rr := httptest.NewRecorder()

	server.setupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestBasicAuthMiddleware(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no credentials", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/requests", nil)
		rr := httptest.NewRecorder()

		server.basicAuthMiddleware(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		server, _, mockUserRepo := newTestServer(t)

		mockUserRepo.EXPECT().
			ValidateUser(gomock.Any(), "admin", "wrong").
			Return(false, nil)

		req := httptest.NewRequest(http.MethodGet, "/requests", nil)
		req.SetBasicAuth("admin", "wrong")
		rr := httptest.NewRecorder()

		server.basicAuthMiddleware(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid credentials", func(t *testing.T) {
		server, _, mockUserRepo := newTestServer(t)

		mockUserRepo.EXPECT().
			ValidateUser(gomock.Any(), "admin", "secret").
			Return(true, nil)

		req := httptest.NewRequest(http.MethodGet, "/requests", nil)
		req.SetBasicAuth("admin", "secret")
		rr := httptest.NewRecorder()

		server.basicAuthMiddleware(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
