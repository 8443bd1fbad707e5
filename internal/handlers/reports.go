package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// MonthlyReport handles GET /reports/monthly?month=YYYY-MM.
func (h *Handlers) MonthlyReport(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	report, err := h.svc.Reports.Monthly(ctx, id.UserID, req.QueryStringParameters["month"])
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(report, http.StatusOK)
}

// CategoryReport handles GET /reports/by-category.
func (h *Handlers) CategoryReport(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	q := req.QueryStringParameters
	rows, err := h.svc.Reports.ByCategory(ctx, id.UserID, q["startDate"], q["endDate"])
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(rows, http.StatusOK)
}
