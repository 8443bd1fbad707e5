package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"expense-tracker-api/internal/apperr"
)

const (
	allowHeaders = "Content-Type,Authorization,X-Amz-Date,X-Api-Key,X-Amz-Security-Token"
	allowMethods = "GET,POST,PUT,DELETE,OPTIONS"
)

var (
	errBodyRequired = apperr.Invalid("Request body is required")
	errBodyInvalid  = apperr.Invalid("Invalid JSON in request body")
)

// envelope is the body of every response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type deletedMessage struct {
	Message string `json:"message"`
}

func (h *Handlers) headers() map[string]string {
	return map[string]string{
		"Content-Type":                     "application/json",
		"Access-Control-Allow-Origin":      h.origin,
		"Access-Control-Allow-Headers":     allowHeaders,
		"Access-Control-Allow-Methods":     allowMethods,
		"Access-Control-Allow-Credentials": "false",
	}
}

// respond serializes body with the fixed headers. A nil body yields an
// empty response body.
func (h *Handlers) respond(status int, body *envelope) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{StatusCode: status, Headers: h.headers()}
	if body == nil {
		return resp
	}
	b, err := json.Marshal(body)
	if err != nil {
		h.log.Error("encoding response failed", "error", err)
		resp.StatusCode = http.StatusInternalServerError
		b = []byte(`{"success":false,"error":"` + apperr.InternalMessage + `"}`)
	}
	resp.Body = string(b)
	return resp
}

func (h *Handlers) ok(data any, status int) events.APIGatewayProxyResponse {
	return h.respond(status, &envelope{Success: true, Data: data})
}

func (h *Handlers) fail(message string, status int) events.APIGatewayProxyResponse {
	return h.respond(status, &envelope{Success: false, Error: message})
}

// failWith maps err to its status and public message. Internal errors are
// logged with their cause and answered with a generic message.
func (h *Handlers) failWith(ctx context.Context, req events.APIGatewayProxyRequest, err error) events.APIGatewayProxyResponse {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(ctx, "request failed",
			"method", req.HTTPMethod,
			"resource", req.Resource,
			"request_id", req.RequestContext.RequestID,
			"error", err)
	}
	return h.fail(apperr.PublicMessage(err), status)
}

// decodeBody unmarshals the JSON request body into dst.
func decodeBody(req events.APIGatewayProxyRequest, dst any) error {
	body := req.Body
	if req.IsBase64Encoded && body != "" {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errBodyInvalid
		}
		body = string(raw)
	}
	if strings.TrimSpace(body) == "" {
		return errBodyRequired
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return apperr.Wrap(apperr.Validation, errBodyInvalid.Message, err)
	}
	return nil
}

// pathID returns the {id} path parameter or a Validation error carrying
// missing.
func pathID(req events.APIGatewayProxyRequest, missing string) (string, error) {
	id := strings.TrimSpace(req.PathParameters["id"])
	if id == "" {
		return "", apperr.Invalid(missing)
	}
	return id, nil
}
