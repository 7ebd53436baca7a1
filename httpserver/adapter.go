package httpserver

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/juliuskrahn/blog-backend/handlers"
)

// adaptRoute bridges a chi route to a wrapped gateway handler: the request is
// translated into the API Gateway event shape and the mapped response written
// back verbatim.
func adaptRoute(route handlers.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := route.Raw(r.Context(), requestToEvent(r, route.Pattern))
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		writeResponse(w, resp)
	}
}

func requestToEvent(r *http.Request, resource string) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for k, vs := range r.Header {
		if len(vs) > 0 {
			headers[k] = vs[0]
		}
	}

	// Values are kept percent-encoded; the envelope mapping decodes them, as
	// it does for real gateway events.
	query := map[string]string{}
	multiQuery := map[string][]string{}
	for _, pair := range strings.Split(r.URL.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			key = rawKey
		}
		query[key] = value
		multiQuery[key] = append(multiQuery[key], value)
	}

	pathParams := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key != "*" {
				pathParams[key] = rctx.URLParams.Values[i]
			}
		}
	}

	var body string
	if r.Body != nil {
		raw, err := io.ReadAll(r.Body)
		if err == nil {
			body = string(raw)
		}
	}

	return events.APIGatewayProxyRequest{
		Resource:                        resource,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               r.Header,
		QueryStringParameters:           query,
		MultiValueQueryStringParameters: multiQuery,
		PathParameters:                  pathParams,
		Body:                            body,
	}
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if resp.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}
