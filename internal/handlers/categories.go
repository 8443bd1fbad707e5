package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"expense-tracker-api/internal/models"
)

func (h *Handlers) ListCategories(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	cats, err := h.svc.Categories.List(ctx, id.UserID)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(cats, http.StatusOK)
}

func (h *Handlers) CreateCategory(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var in models.CreateCategoryInput
	if err := decodeBody(req, &in); err != nil {
		return h.failWith(ctx, req, err)
	}
	c, err := h.svc.Categories.Create(ctx, id.UserID, in)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(c, http.StatusCreated)
}

func (h *Handlers) DeleteCategory(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	categoryID, err := pathID(req, "Category ID is required")
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	if err := h.svc.Categories.Delete(ctx, id.UserID, categoryID); err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(deletedMessage{Message: "Category deleted successfully"}, http.StatusNoContent)
}
