package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/auth"
)

// Context key type to avoid collisions.
type contextKey string

// IdentityContextKey is the context key for the authenticated caller.
const IdentityContextKey contextKey = "identity"

// GetIdentityFromContext retrieves the caller attached by AuthMiddleware.
func GetIdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityContextKey).(Identity)
	return id, ok
}

// AuthMiddleware verifies the bearer token and attaches the caller to the
// request context, standing in for the gateway authorizer.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.ExtractBearer(r.Header.Get("Authorization"))
		if !ok {
			writeResponse(w, h.fail(errNoToken.Error(), http.StatusUnauthorized))
			return
		}
		claims, err := h.tokens.Verify(token)
		if err != nil {
			writeResponse(w, h.fail(auth.ErrInvalidToken.Message, http.StatusUnauthorized))
			return
		}

		id := Identity{UserID: claims.UserID, Email: claims.Email, Source: SourceRESTAuthorizer}
		ctx := context.WithValue(r.Context(), IdentityContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Adapt serves a gateway handler over HTTP. It rebuilds the proxy event the
// gateway would send, including the authorizer context, from the request.
func (h *Handlers) Adapt(next Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeResponse(w, h.fail("Invalid request body", http.StatusBadRequest))
			return
		}

		resp, err := next(r.Context(), proxyRequest(r, string(body)))
		if err != nil {
			h.log.ErrorContext(r.Context(), "handler failed", "path", r.URL.Path, "error", err)
			resp = h.fail(apperr.InternalMessage, http.StatusInternalServerError)
		}
		writeResponse(w, resp)
	}
}

func proxyRequest(r *http.Request, body string) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	var query map[string]string
	if values := r.URL.Query(); len(values) > 0 {
		query = make(map[string]string, len(values))
		for k := range values {
			query[k] = values.Get(k)
		}
	}

	var resource string
	var params map[string]string
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		resource = rctx.RoutePattern()
		if len(rctx.URLParams.Keys) > 0 {
			params = make(map[string]string, len(rctx.URLParams.Keys))
			for i, k := range rctx.URLParams.Keys {
				params[k] = rctx.URLParams.Values[i]
			}
		}
	}

	authorizer := map[string]any{}
	if id, ok := GetIdentityFromContext(r.Context()); ok {
		authorizer["userId"] = id.UserID
		authorizer["email"] = id.Email
	}

	return events.APIGatewayProxyRequest{
		Resource:              resource,
		Path:                  r.URL.Path,
		HTTPMethod:            r.Method,
		Headers:               headers,
		QueryStringParameters: query,
		PathParameters:        params,
		Body:                  body,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:    middleware.GetReqID(r.Context()),
			ResourcePath: resource,
			HTTPMethod:   r.Method,
			Path:         r.URL.Path,
			Authorizer:   authorizer,
		},
	}
}

// writeResponse copies a proxy response to w. No body is written with 204.
func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.StatusCode != http.StatusNoContent && resp.Body != "" {
		io.WriteString(w, resp.Body)
	}
}

// Preflight answers every CORS OPTIONS request before routing.
func (h *Handlers) Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			writeResponse(w, h.respond(http.StatusNoContent, nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.ok(map[string]string{"status": "ok"}, http.StatusOK))
}

// NotFound answers unknown routes with the error envelope.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.fail("Route not found", http.StatusNotFound))
}

// MethodNotAllowed answers a known path with an unsupported method.
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.fail("Method not allowed", http.StatusMethodNotAllowed))
}

// RequestLogger logs one line per request.
func (h *Handlers) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Router mounts every route on a chi router. Protected routes sit behind
// AuthMiddleware.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(h.Preflight)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
	r.Get("/healthz", h.Health)

	for _, rt := range h.Routes() {
		if rt.Public {
			r.Method(rt.Method, rt.Resource, h.Adapt(rt.Handler))
			continue
		}
		r.With(h.AuthMiddleware).Method(rt.Method, rt.Resource, h.Adapt(rt.Handler))
	}
	return r
}
