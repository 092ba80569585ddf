// Package http serves the operational surface of the bot: health, Prometheus
// metrics, the Telegram webhook and the token-protected moderation API.
package http

import (
	"errors"
	"net/http"

	"makanapa/internal/adapters/in/telegram"
	"makanapa/internal/core/application/usecases/commands"
	"makanapa/internal/core/application/usecases/queries"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/generated/servers"
	"makanapa/internal/pkg/errs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var _ servers.ServerInterface = &Server{}

// Server coordinates between HTTP handlers and application use cases.
// It implements servers.ServerInterface for the moderation API; the webhook
// and health endpoints are plain echo handlers.
type Server struct {
	// Command handlers
	setCustomerBlockedHandler commands.SetCustomerBlockedCommandHandler

	// Query handlers
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler

	events telegram.EventSink
	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
// events receives webhook updates; it may be nil when the bot long-polls.
func NewServer(
	setCustomerBlockedHandler commands.SetCustomerBlockedCommandHandler,
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler,
	events telegram.EventSink,
	logger *zap.Logger,
) *Server {
	return &Server{
		setCustomerBlockedHandler: setCustomerBlockedHandler,
		getPendingOrdersHandler:   getPendingOrdersHandler,
		events:                    events,
		logger:                    logger.With(zap.String("component", "http")),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Webhook handles POST /telegram/:secret. Updates the bot does not use are
// acknowledged and dropped; a full queue answers 503 so Telegram redelivers.
func (s *Server) Webhook(ctx echo.Context) error {
	if s.events == nil {
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: "Webhook is not enabled",
		})
	}

	var update tgbotapi.Update
	if err := ctx.Bind(&update); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid update",
		})
	}

	ev, ok := telegram.EventFromUpdate(update)
	if !ok {
		return ctx.NoContent(http.StatusOK)
	}

	if err := s.events.Submit(ctx.Request().Context(), ev); err != nil {
		s.logger.Warn("webhook update not queued", zap.Int("update_id", update.UpdateID), zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Update could not be queued",
		})
	}

	return ctx.NoContent(http.StatusOK)
}

// BlockCustomer handles POST /api/v1/customers/{id}/block - stops the customer from placing orders.
func (s *Server) BlockCustomer(ctx echo.Context, id servers.CustomerId) error {
	return s.setBlocked(ctx, id, true)
}

// UnblockCustomer handles POST /api/v1/customers/{id}/unblock.
func (s *Server) UnblockCustomer(ctx echo.Context, id servers.CustomerId) error {
	return s.setBlocked(ctx, id, false)
}

func (s *Server) setBlocked(ctx echo.Context, rawID servers.CustomerId, blocked bool) error {
	id, err := kernel.NewUserID(rawID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer id",
		})
	}

	cmd, err := commands.NewSetCustomerBlockedCommand(id, blocked)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer data: " + err.Error(),
		})
	}

	err = s.setCustomerBlockedHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: "Customer not found",
		})
	}
	if err != nil {
		s.logger.Error("failed to update customer", zap.Int64("customer_id", id.Int64()), zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update customer",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingOrders handles GET /api/v1/orders/pending - lists orders still waiting for a runner.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	query := queries.NewGetPendingOrdersQuery()

	orders, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.Error("failed to list pending orders", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]servers.PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = servers.PendingOrder{
			Id:           o.ID.String(),
			CustomerId:   o.CustomerID.Int64(),
			DeliveryType: servers.PendingOrderDeliveryType(o.Kind.String()),
			From:         o.From,
			To:           o.To,
			CreatedAt:    o.CreatedAt,
			Published:    o.Published,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
