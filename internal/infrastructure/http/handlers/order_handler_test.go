package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/application/orders"
	"storefront/internal/application/validation"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type handlerMocks struct {
	uow      *mocks.MockUnitOfWork
	orders   *mocks.MockRepository[model.Order]
	products *mocks.MockRepository[model.Product]
	delivery *mocks.MockRepository[model.DeliveryMethod]
	baskets  *mocks.MockBasketStore
	events   *mocks.MockEventPublisher
}

func setupHandler(t *testing.T) (*gin.Engine, handlerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	m := handlerMocks{
		uow:      mocks.NewMockUnitOfWork(ctrl),
		orders:   mocks.NewMockRepository[model.Order](ctrl),
		products: mocks.NewMockRepository[model.Product](ctrl),
		delivery: mocks.NewMockRepository[model.DeliveryMethod](ctrl),
		baskets:  mocks.NewMockBasketStore(ctrl),
		events:   mocks.NewMockEventPublisher(ctrl),
	}
	m.uow.EXPECT().Orders().Return(m.orders).AnyTimes()
	m.uow.EXPECT().Products().Return(m.products).AnyTimes()
	m.uow.EXPECT().DeliveryMethods().Return(m.delivery).AnyTimes()
	m.uow.EXPECT().Close().Return(nil).AnyTimes()

	factory := repository.UnitOfWorkFactory(func() repository.UnitOfWork { return m.uow })
	svc := orders.NewService(factory, m.baskets, m.events, zap.NewNop())
	handler := NewOrderHandler(svc, validation.NewValidator(), zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	api.POST("/orders", handler.Create)
	api.GET("/orders", handler.List)
	api.GET("/orders/:id", handler.GetByID)
	api.GET("/delivery-methods", handler.DeliveryMethods)
	return router, m
}

func createOrderBody(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(CreateOrderRequest{
		BasketID:         "B1",
		DeliveryMethodID: 1,
		ShipToAddress: model.Address{
			FirstName: "Jane",
			LastName:  "Doe",
			Street:    "456 Street",
			City:      "Berlin",
			ZipCode:   "654321",
		},
	})
	require.NoError(t, err)
	return string(body)
}

func TestOrderHandler_CreateRequiresBuyerHeader(t *testing.T) {
	router, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(createOrderBody(t)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_CreateRejectsInvalidBody(t *testing.T) {
	router, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"basketId":"B1"}`))
	req.Header.Set("X-Buyer-Email", "jane@example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_CreateReturnsCreated(t *testing.T) {
	router, m := setupHandler(t)

	m.baskets.EXPECT().Get(gomock.Any(), "B1").Return(&model.Basket{
		ID:    "B1",
		Items: []model.BasketItem{{ProductID: 5, Quantity: 2}},
	}, nil)
	m.products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(&model.Product{
		ID: 5, Name: "Mascaras", Price: 10.00,
	}, nil)
	m.delivery.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&model.DeliveryMethod{ID: 1, ShortName: "UPS1"}, nil)
	m.orders.EXPECT().Add(gomock.Any()).Do(func(order *model.Order) {
		order.ID = 101
	})
	m.uow.EXPECT().Complete(gomock.Any()).Return(int64(2), nil)
	m.baskets.EXPECT().Delete(gomock.Any(), "B1").Return(nil)
	m.events.EXPECT().PublishOrderCreated(gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(createOrderBody(t)))
	req.Header.Set("X-Buyer-Email", "jane@example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, "jane@example.com", created.BuyerEmail)
	assert.InDelta(t, 20.00, created.Subtotal, 1e-9)
}

func TestOrderHandler_CreateMapsMissingBasketToNotFound(t *testing.T) {
	router, m := setupHandler(t)

	m.baskets.EXPECT().Get(gomock.Any(), "B1").Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(createOrderBody(t)))
	req.Header.Set("X-Buyer-Email", "jane@example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_GetByIDRejectsMalformedID(t *testing.T) {
	router, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	req.Header.Set("X-Buyer-Email", "jane@example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByIDNotFound(t *testing.T) {
	router, m := setupHandler(t)

	m.orders.EXPECT().First(gomock.Any(), gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
	req.Header.Set("X-Buyer-Email", "jane@example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_DeliveryMethods(t *testing.T) {
	router, m := setupHandler(t)

	m.delivery.EXPECT().ListAll(gomock.Any()).Return([]*model.DeliveryMethod{
		{ID: 1, ShortName: "UPS1", Price: 10},
		{ID: 4, ShortName: "FREE", Price: 0},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/delivery-methods", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var methods []*model.DeliveryMethod
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	require.Len(t, methods, 2)
	assert.Equal(t, "UPS1", methods[0].ShortName)
}
