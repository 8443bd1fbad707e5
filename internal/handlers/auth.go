package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/models"
)

// ErrUnauthorized is returned by Authorize for any rejected token. API
// Gateway answers 401 when an authorizer fails with exactly this message.
var ErrUnauthorized = errors.New("Unauthorized")

var errNoToken = errors.New("No token provided")

// Register handles POST /auth/register.
func (h *Handlers) Register(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var in models.Credentials
	if err := decodeBody(req, &in); err != nil {
		return h.failWith(ctx, req, err), nil
	}
	res, err := h.svc.Auth.Register(ctx, in)
	if err != nil {
		return h.failWith(ctx, req, err), nil
	}
	return h.ok(res, http.StatusCreated), nil
}

// Login handles POST /auth/login.
func (h *Handlers) Login(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var in models.LoginInput
	if err := decodeBody(req, &in); err != nil {
		return h.failWith(ctx, req, err), nil
	}
	res, err := h.svc.Auth.Login(ctx, in)
	if err != nil {
		return h.failWith(ctx, req, err), nil
	}
	return h.ok(res, http.StatusOK), nil
}

// Me handles GET /auth/me.
func (h *Handlers) Me(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	user, err := h.svc.Auth.Me(ctx, id.UserID)
	if err != nil {
		return h.failWith(ctx, req, err)
	}
	return h.ok(user, http.StatusOK)
}

// Authorize is the gateway token authorizer. A valid bearer token yields an
// Allow policy for the invoked method with the caller in the context.
func (h *Handlers) Authorize(ctx context.Context, req events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	token, ok := auth.ExtractBearer(req.AuthorizationToken)
	if !ok {
		h.log.WarnContext(ctx, "authorization failed", "error", errNoToken)
		return events.APIGatewayCustomAuthorizerResponse{}, ErrUnauthorized
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		h.log.WarnContext(ctx, "authorization failed", "error", err)
		return events.APIGatewayCustomAuthorizerResponse{}, ErrUnauthorized
	}

	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: claims.UserID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{{
				Action:   []string{"execute-api:Invoke"},
				Effect:   "Allow",
				Resource: []string{req.MethodArn},
			}},
		},
		Context: map[string]any{
			"userId": claims.UserID,
			"email":  claims.Email,
		},
	}, nil
}
