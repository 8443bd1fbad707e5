package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/models"
)

const expenseIDRequired = "Expense ID is required"

// parseExpenseQuery reads the listing query string over the defaults.
// Numeric fields that do not parse are rejected here; ranges are checked by
// the service.
func parseExpenseQuery(params map[string]string) (models.ExpenseQuery, error) {
	q := models.NewExpenseQuery()
	q.StartDate = params["startDate"]
	q.EndDate = params["endDate"]
	q.Category = params["category"]
	if v := params["sortBy"]; v != "" {
		q.SortBy = v
	}
	if v := params["sortOrder"]; v != "" {
		q.SortOrder = v
	}

	ints := []struct {
		name string
		dst  *int
	}{{"page", &q.Page}, {"pageSize", &q.PageSize}}
	for _, f := range ints {
		v := params[f.name]
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, apperr.Invalid(f.name + " must be a number")
		}
		*f.dst = n
	}

	floats := []struct {
		name string
		dst  **float64
	}{{"minAmount", &q.MinAmount}, {"maxAmount", &q.MaxAmount}}
	for _, f := range floats {
		v := params[f.name]
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, apperr.Invalid(f.name + " must be a number")
		}
		*f.dst = &n
	}
	return q, nil
}

// ListExpenses handles GET /expenses.
func (h *Handlers) ListExpenses(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	q, err := parseExpenseQuery(req.QueryStringParameters)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	page, err := h.svc.Expenses.List(ctx, id.UserID, q)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(page, http.StatusOK)
}

// CreateExpense handles POST /expenses.
func (h *Handlers) CreateExpense(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var in models.CreateExpenseInput
	if err := decodeBody(req, &in); err != nil {
		return h.failWith(ctx, req, err)
	}
	exp, err := h.svc.Expenses.Create(ctx, id.UserID, in)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(exp, http.StatusCreated)
}

// GetExpense handles GET /expenses/{id}.
func (h *Handlers) GetExpense(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	expenseID, err := pathID(req, expenseIDRequired)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	exp, err := h.svc.Expenses.Get(ctx, id.UserID, expenseID)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(exp, http.StatusOK)
}

// UpdateExpense handles PUT /expenses/{id}.
func (h *Handlers) UpdateExpense(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	expenseID, err := pathID(req, expenseIDRequired)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	var patch models.UpdateExpenseInput
	if err := decodeBody(req, &patch); err != nil {
		return h.failWith(ctx, req, err)
	}
	exp, err := h.svc.Expenses.Update(ctx, id.UserID, expenseID, patch)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(exp, http.StatusOK)
}

// DeleteExpense handles DELETE /expenses/{id}.
func (h *Handlers) DeleteExpense(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	expenseID, err := pathID(req, expenseIDRequired)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	if err := h.svc.Expenses.Delete(ctx, id.UserID, expenseID); err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(deletedMessage{Message: "Expense deleted successfully"}, http.StatusNoContent)
}
