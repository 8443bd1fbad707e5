package handlers

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/aws/aws-lambda-go/events"

	"expense-tracker-api/internal/apperr"
)

// IdentitySource names the gateway integration an identity was read from.
type IdentitySource int

const (
	// SourceRESTAuthorizer is a REST API token authorizer, which puts the
	// context at requestContext.authorizer.
	SourceRESTAuthorizer IdentitySource = iota + 1
	// SourceHTTPLambdaAuthorizer is an HTTP API Lambda authorizer, which
	// nests it under requestContext.authorizer.lambda.
	SourceHTTPLambdaAuthorizer
)

func (s IdentitySource) String() string {
	switch s {
	case SourceRESTAuthorizer:
		return "rest_authorizer"
	case SourceHTTPLambdaAuthorizer:
		return "http_lambda_authorizer"
	default:
		return "unknown"
	}
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
	Email  string
	Source IdentitySource
}

var errNoIdentity = apperr.Unauthenticated("Unauthorized")

type identityShape struct {
	source IdentitySource
	fields func(authorizer map[string]any) map[string]any
}

// identityShapes are tried in order; the first that yields a user id wins.
var identityShapes = []identityShape{
	{SourceRESTAuthorizer, func(a map[string]any) map[string]any { return a }},
	{SourceHTTPLambdaAuthorizer, func(a map[string]any) map[string]any {
		nested, _ := a["lambda"].(map[string]any)
		return nested
	}},
}

// ResolveIdentity reads the caller from the authorizer context.
func ResolveIdentity(authorizer map[string]any) (Identity, error) {
	if authorizer == nil {
		return Identity{}, errNoIdentity
	}
	for _, shape := range identityShapes {
		fields := shape.fields(authorizer)
		userID, _ := fields["userId"].(string)
		if userID == "" {
			continue
		}
		email, _ := fields["email"].(string)
		return Identity{UserID: userID, Email: email, Source: shape.source}, nil
	}
	return Identity{}, errNoIdentity
}

// identity resolves the caller of req. Failures log which authorizer keys
// were present, never their values.
func (h *Handlers) identity(ctx context.Context, req events.APIGatewayProxyRequest) (Identity, error) {
	id, err := ResolveIdentity(req.RequestContext.Authorizer)
	if errors.Is(err, errNoIdentity) {
		keys := slices.Sorted(maps.Keys(req.RequestContext.Authorizer))
		h.log.WarnContext(ctx, "user id missing from request context",
			"has_authorizer", req.RequestContext.Authorizer != nil,
			"authorizer_keys", keys)
	}
	return id, err
}

// authed wraps fn so it only runs for requests with a resolved identity.
func (h *Handlers) authed(fn func(ctx context.Context, id Identity, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse) Handler {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		id, err := h.identity(ctx, req)
		if err != nil {
			return h.failWith(ctx, req, err), nil
		}
		return fn(ctx, id, req), nil
	}
}
