package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockProcessOrderSignalsHandler struct{ mock.Mock }

func (m *MockProcessOrderSignalsHandler) Handle(
	ctx context.Context,
	cmd commands.ProcessOrderSignalsCommand,
) (commands.ProcessOrderSignalsResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ProcessOrderSignalsResult), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error) {
	args := m.Called(ctx, query.OrderID())
	return args.Get(0).(queries.OrderResponse), args.Error(1)
}

type MockGetOrdersHandler struct{ mock.Mock }

func (m *MockGetOrdersHandler) Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockGetReceiptHandler struct{ mock.Mock }

func (m *MockGetReceiptHandler) Handle(ctx context.Context, query queries.GetReceiptQuery) (queries.ReceiptResponse, error) {
	args := m.Called(ctx, query.OrderID())
	return args.Get(0).(queries.ReceiptResponse), args.Error(1)
}

type serverFixture struct {
	e          *echo.Echo
	createOrd  *MockCreateOrderHandler
	signals    *MockProcessOrderSignalsHandler
	getOrder   *MockGetOrderHandler
	getOrders  *MockGetOrdersHandler
	getReceipt *MockGetReceiptHandler
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	f := &serverFixture{
		createOrd:  new(MockCreateOrderHandler),
		signals:    new(MockProcessOrderSignalsHandler),
		getOrder:   new(MockGetOrderHandler),
		getOrders:  new(MockGetOrdersHandler),
		getReceipt: new(MockGetReceiptHandler),
	}

	server := httpin.NewServer(f.createOrd, f.signals, f.getOrder, f.getOrders, f.getReceipt, zap.NewNop())
	e, err := httpin.NewRouter(server, zap.NewNop())
	require.NoError(t, err)
	f.e = e

	t.Cleanup(func() {
		f.createOrd.AssertExpectations(t)
		f.signals.AssertExpectations(t)
		f.getOrder.AssertExpectations(t)
		f.getOrders.AssertExpectations(t)
		f.getReceipt.AssertExpectations(t)
	})
	return f
}

func (f *serverFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder_Created(t *testing.T) {
	f := newServerFixture(t)

	var placed commands.CreateOrderCommand
	f.createOrd.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Customer() == "Ana" &&
			assert.ObjectsAreEqual([]string{"Coffee", "Cake"}, cmd.Items()) &&
			cmd.Table() == "5"
	})).Run(func(args mock.Arguments) {
		placed = args.Get(1).(commands.CreateOrderCommand)
	}).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"cliente":"Ana","itens":["Coffee","Cake"],"mesa":"5"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body servers.OrderCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Order created", body.Message)
	assert.Equal(t, servers.PENDING, body.Status)
	assert.Equal(t, placed.OrderID().String(), body.Id.String())
}

func TestCreateOrder_NumericTable_Created(t *testing.T) {
	f := newServerFixture(t)
	f.createOrd.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Customer() == "Ana" && cmd.Table() == "5"
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"cliente":"Ana","itens":["Coffee","Cake"],"mesa":5}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body servers.OrderCreated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, servers.PENDING, body.Status)
}

func TestCreateOrder_SchemaViolations_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing items", body: `{"cliente":"Ana","mesa":"5"}`},
		{name: "empty items", body: `{"cliente":"Ana","itens":[],"mesa":"5"}`},
		{name: "missing customer", body: `{"itens":["Coffee"],"mesa":"5"}`},
		{name: "missing table", body: `{"cliente":"Ana","itens":["Coffee"]}`},
		{name: "zero table", body: `{"cliente":"Ana","itens":["Coffee"],"mesa":0}`},
		{name: "fractional table", body: `{"cliente":"Ana","itens":["Coffee"],"mesa":2.5}`},
		{name: "boolean table", body: `{"cliente":"Ana","itens":["Coffee"],"mesa":true}`},
		{name: "not json", body: `cliente=Ana`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)

			rec := f.do(http.MethodPost, "/api/v1/orders", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
			f.createOrd.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_BlankCustomer_BadRequest(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"cliente":"   ","itens":["Coffee"],"mesa":"5"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "Invalid order data")
}

func TestCreateOrder_StorageFailure_InternalError(t *testing.T) {
	f := newServerFixture(t)
	f.createOrd.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewStorageError("add order", errors.New("connection refused"))).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"cliente":"Ana","itens":["Coffee"],"mesa":"5"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Failed to create order", body.Message)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestGetOrder_Found(t *testing.T) {
	f := newServerFixture(t)
	id := kernel.NewUUID()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	f.getOrder.On("Handle", mock.Anything, id).Return(queries.OrderResponse{
		ID:        id,
		Customer:  "Ana",
		Items:     []string{"Coffee", "Cake"},
		Table:     "5",
		Status:    order.Processed.String(),
		CreatedAt: created,
		UpdatedAt: created.Add(time.Second),
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body.Id.String())
	assert.Equal(t, "Ana", body.Cliente)
	assert.Equal(t, []string{"Coffee", "Cake"}, body.Itens)
	assert.Equal(t, "5", body.Mesa)
	assert.Equal(t, servers.PROCESSED, body.Status)
	assert.True(t, created.Equal(body.CriadoEm))
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newServerFixture(t)
	id := kernel.NewUUID()
	f.getOrder.On("Handle", mock.Anything, id).
		Return(queries.OrderResponse{}, errs.NewObjectNotFoundError("orderID", id.String())).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_MalformedID_BadRequest(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrders_FilterAndLimit(t *testing.T) {
	f := newServerFixture(t)
	id := kernel.NewUUID()

	f.getOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrdersQuery) bool {
		return q.Status() != nil && *q.Status() == order.Pending && q.Limit() == 2
	})).Return([]queries.OrderResponse{{
		ID:       id,
		Customer: "Ana",
		Items:    []string{"Coffee"},
		Table:    "5",
		Status:   order.Pending.String(),
	}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders?status=PENDING&limit=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0].Id.String())
}

func TestGetOrders_Empty_ReturnsArray(t *testing.T) {
	f := newServerFixture(t)
	f.getOrders.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderResponse(nil), nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetOrders_InvalidParams_BadRequest(t *testing.T) {
	for _, target := range []string{
		"/api/v1/orders?status=SHIPPED",
		"/api/v1/orders?limit=0",
		"/api/v1/orders?limit=1000",
	} {
		t.Run(target, func(t *testing.T) {
			f := newServerFixture(t)

			rec := f.do(http.MethodGet, target, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetOrderReceipt_ReturnsDocument(t *testing.T) {
	f := newServerFixture(t)
	id := kernel.NewUUID()
	content := []byte("Order: " + id.String() + "\nCustomer: Ana\nItems: Coffee, Cake\nTable: 5")

	f.getReceipt.On("Handle", mock.Anything, id).Return(queries.ReceiptResponse{
		Key:         id.String() + ".pdf",
		ContentType: "application/pdf",
		Content:     content,
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String()+"/receipt", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), id.String()+".pdf")
	assert.Equal(t, content, rec.Body.Bytes())
}

func TestGetOrderReceipt_NotFound(t *testing.T) {
	f := newServerFixture(t)
	id := kernel.NewUUID()
	f.getReceipt.On("Handle", mock.Anything, id).
		Return(queries.ReceiptResponse{}, errs.NewObjectNotFoundError("receipt", id.String()+".pdf")).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+id.String()+"/receipt", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProcessOrderSignals_ReportsOnlyFailedRecords(t *testing.T) {
	f := newServerFixture(t)
	ok, missing := kernel.NewUUID(), kernel.NewUUID()

	f.signals.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessOrderSignalsCommand) bool {
		records := cmd.Records()
		return len(records) == 2 &&
			records[0].MessageID == "m-1" &&
			string(records[0].Body) == `{"id":"`+ok.String()+`"}` &&
			records[1].MessageID == "m-2"
	})).Return(commands.ProcessOrderSignalsResult{Failures: []commands.SignalFailure{
		{MessageID: "m-2", Err: errs.NewObjectNotFoundError("orderID", missing.String())},
	}}, nil).Once()

	batch := servers.SignalBatch{Records: []servers.SignalRecord{
		{MessageId: "m-1", Body: `{"id":"` + ok.String() + `"}`},
		{MessageId: "m-2", Body: `{"id":"` + missing.String() + `"}`},
	}}
	raw, err := json.Marshal(batch)
	require.NoError(t, err)

	rec := f.do(http.MethodPost, "/api/v1/order-signals", string(raw))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"batchItemFailures":[{"itemIdentifier":"m-2"}]}`, rec.Body.String())
}

func TestProcessOrderSignals_AllSucceed_EmptyFailures(t *testing.T) {
	f := newServerFixture(t)
	f.signals.On("Handle", mock.Anything, mock.Anything).
		Return(commands.ProcessOrderSignalsResult{}, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/order-signals",
		`{"Records":[{"messageId":"m-1","body":"{\"id\":\"`+kernel.NewUUID().String()+`\"}"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"batchItemFailures":[]}`, rec.Body.String())
}

func TestProcessOrderSignals_MissingRecords_BadRequest(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/order-signals", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
