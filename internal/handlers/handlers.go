// Package handlers exposes the API as API Gateway proxy handlers, plus the
// pieces needed to serve the same handlers from a local HTTP router.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/logging"
	"expense-tracker-api/internal/service"
)

// Handler is the shape of every gateway handler.
type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Handlers holds dependencies for the gateway handlers.
type Handlers struct {
	svc    *service.Services
	tokens *auth.TokenCodec
	origin string
	log    *slog.Logger
}

// NewHandlers creates a new Handlers instance. origin is the value sent in
// Access-Control-Allow-Origin.
func NewHandlers(svc *service.Services, tokens *auth.TokenCodec, origin string, log *slog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		tokens: tokens,
		origin: origin,
		log:    logging.Component(log, "handlers"),
	}
}

// Route binds a method and resource template to a handler. Public routes
// need no bearer token.
type Route struct {
	Method   string
	Resource string
	Public   bool
	Handler  Handler
}

// Routes returns every API route. Resource uses the gateway's template
// syntax, which is also chi's.
func (h *Handlers) Routes() []Route {
	return []Route{
		{http.MethodPost, "/auth/register", true, h.Register},
		{http.MethodPost, "/auth/login", true, h.Login},
		{http.MethodGet, "/auth/me", false, h.authed(h.Me)},

		{http.MethodGet, "/expenses", false, h.authed(h.ListExpenses)},
		{http.MethodPost, "/expenses", false, h.authed(h.CreateExpense)},
		{http.MethodGet, "/expenses/{id}", false, h.authed(h.GetExpense)},
		{http.MethodPut, "/expenses/{id}", false, h.authed(h.UpdateExpense)},
		{http.MethodDelete, "/expenses/{id}", false, h.authed(h.DeleteExpense)},

		{http.MethodGet, "/categories", false, h.authed(h.ListCategories)},
		{http.MethodPost, "/categories", false, h.authed(h.CreateCategory)},
		{http.MethodDelete, "/categories/{id}", false, h.authed(h.DeleteCategory)},

		{http.MethodGet, "/reports/monthly", false, h.authed(h.MonthlyReport)},
		{http.MethodGet, "/reports/by-category", false, h.authed(h.CategoryReport)},
	}
}

// Dispatch routes a proxy request to its handler by method and resource.
// It is the entry point of the single API function.
func (h *Handlers) Dispatch(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodOptions {
		return h.respond(http.StatusNoContent, nil), nil
	}
	for _, rt := range h.Routes() {
		if rt.Method == req.HTTPMethod && rt.Resource == req.Resource {
			return rt.Handler(ctx, req)
		}
	}
	h.log.Warn("no route", "method", req.HTTPMethod, "resource", req.Resource, "path", req.Path)
	return h.fail("Route not found", http.StatusNotFound), nil
}
