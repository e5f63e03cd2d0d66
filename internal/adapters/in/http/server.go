package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const orderCreatedMessage = "Order created"

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	ProcessOrderSignalsHandler interface {
		Handle(ctx context.Context, cmd commands.ProcessOrderSignalsCommand) (commands.ProcessOrderSignalsResult, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}

	GetOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderResponse, error)
	}

	GetReceiptHandler interface {
		Handle(ctx context.Context, query queries.GetReceiptQuery) (queries.ReceiptResponse, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         CreateOrderHandler
	processOrderSignalsHandler ProcessOrderSignalsHandler

	// Query handlers
	getOrderHandler   GetOrderHandler
	getOrdersHandler  GetOrdersHandler
	getReceiptHandler GetReceiptHandler

	logger *zap.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	processOrderSignalsHandler ProcessOrderSignalsHandler,
	getOrderHandler GetOrderHandler,
	getOrdersHandler GetOrdersHandler,
	getReceiptHandler GetReceiptHandler,
	logger *zap.Logger,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		processOrderSignalsHandler: processOrderSignalsHandler,
		getOrderHandler:            getOrderHandler,
		getOrdersHandler:           getOrdersHandler,
		getReceiptHandler:          getReceiptHandler,
		logger:                     logger.With(zap.String("component", "http_server")),
	}
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&request); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	table, err := tableText(request.Mesa)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.Cliente, request.Itens, table)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.failure(ctx, "create order", err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{
		Id:      orderID.Bytes(),
		Message: orderCreatedMessage,
		Status:  servers.PENDING,
	})
}

// GetOrders handles GET /api/v1/orders - lists orders, newest first.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(string(*params.Status))
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid status: "+err.Error())
		}
		status = &parsed
	}

	query, err := queries.NewGetOrdersQuery(status, lo.FromPtr(params.Limit))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid filter: "+err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failure(ctx, "list orders", err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, lo.Map(orders, func(o queries.OrderResponse, _ int) servers.Order {
		return toOrder(o)
	}))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failure(ctx, "get order", err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrder(response))
}

// GetOrderReceipt handles GET /api/v1/orders/{orderId}/receipt - returns the stored document.
func (s *Server) GetOrderReceipt(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	query, err := queries.NewGetReceiptQuery(id)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	response, err := s.getReceiptHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failure(ctx, "get receipt", err, "Failed to retrieve receipt")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+response.Key+`"`)
	return ctx.Blob(http.StatusOK, response.ContentType, response.Content)
}

// ProcessOrderSignals handles POST /api/v1/order-signals - processes a pushed batch.
// The batch is always answered with 200; failed records are listed so only
// they are redelivered.
func (s *Server) ProcessOrderSignals(ctx echo.Context) error {
	var batch servers.ProcessOrderSignalsJSONRequestBody
	if err := ctx.Bind(&batch); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	records := lo.Map(batch.Records, func(r servers.SignalRecord, _ int) commands.SignalRecord {
		return commands.SignalRecord{MessageID: r.MessageId, Body: []byte(r.Body)}
	})

	result, err := s.processOrderSignalsHandler.Handle(
		ctx.Request().Context(),
		commands.NewProcessOrderSignalsCommand(records),
	)
	if err != nil {
		return s.failure(ctx, "process signals", err, "Failed to process signals")
	}

	for _, f := range result.Failures {
		s.logger.Warn("signal failed", zap.String("message_id", f.MessageID), zap.Error(f.Err))
	}

	return ctx.JSON(http.StatusOK, servers.BatchResponse{
		BatchItemFailures: lo.Map(result.FailedMessageIDs(), func(id string, _ int) servers.BatchItemFailure {
			return servers.BatchItemFailure{ItemIdentifier: id}
		}),
	})
}

// failure maps err to a status code and logs server-side failures.
func (s *Server) failure(ctx echo.Context, operation string, err error, message string) error {
	switch {
	case errs.IsValidation(err):
		return errorResponse(ctx, http.StatusBadRequest, message+": "+err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	default:
		s.logger.Error(operation+" failed", zap.Error(err))
		return errorResponse(ctx, http.StatusInternalServerError, message)
	}
}

// tableText accepts a table given as text or as a positive integer.
func tableText(mesa servers.CreateOrderRequest_Mesa) (string, error) {
	if text, err := mesa.AsCreateOrderRequestMesa0(); err == nil {
		return text, nil
	}
	number, err := mesa.AsCreateOrderRequestMesa1()
	if err != nil || number < 1 {
		return "", errs.NewValueIsInvalidError("mesa")
	}
	return strconv.Itoa(number), nil
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

func toOrder(o queries.OrderResponse) servers.Order {
	return servers.Order{
		Id:           o.ID.Bytes(),
		Cliente:      o.Customer,
		Itens:        o.Items,
		Mesa:         o.Table,
		Status:       servers.OrderStatus(o.Status),
		CriadoEm:     o.CreatedAt,
		AtualizadoEm: o.UpdatedAt,
	}
}
