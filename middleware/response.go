package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// CORS headers injected into every response unless explicitly overridden.
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
)

// Response holds the outbound representation before it is mapped to the wire
// format. The three CORS headers are set on construction unless the caller
// supplied them; they are never removed, only overridden per key.
//
// ErrorMessages entries are either plain strings or two-element
// [label, detail] pairs. Map is the single point where they surface to the
// wire; no other layer formats errors.
type Response struct {
	StatusCode        int
	Headers           map[string]string
	MultiValueHeaders map[string][]string
	Body              map[string]any
	ErrorMessages     []any
}

// NewResponse creates a response with the given status code, CORS defaults and
// an empty body.
func NewResponse(statusCode int) *Response {
	r := &Response{
		StatusCode:        statusCode,
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
		Body:              map[string]any{},
	}
	r.applyCORSDefaults()
	return r
}

// NewBodyResponse creates a response carrying body fields.
func NewBodyResponse(statusCode int, body map[string]any) *Response {
	r := NewResponse(statusCode)
	if body != nil {
		r.Body = body
	}
	return r
}

// NewErrorResponse creates a response carrying error messages. Each message is
// either a string or a two-element [label, detail] pair.
func NewErrorResponse(statusCode int, messages ...any) *Response {
	r := NewResponse(statusCode)
	r.ErrorMessages = messages
	return r
}

// WithHeader sets a header, overriding a CORS default if the key matches.
func (r *Response) WithHeader(key, value string) *Response {
	r.Headers[key] = value
	return r
}

func (r *Response) applyCORSDefaults() {
	for _, h := range []string{HeaderAllowOrigin, HeaderAllowMethods, HeaderAllowHeaders} {
		if _, ok := r.Headers[h]; !ok {
			r.Headers[h] = "*"
		}
	}
}

// Map produces the wire representation expected by API Gateway. The body key
// is omitted entirely when both the body fields and the error list are empty;
// the "errors" key is added only when the error list is non-empty.
func (r *Response) Map() events.APIGatewayProxyResponse {
	mapped := events.APIGatewayProxyResponse{
		StatusCode:        r.StatusCode,
		Headers:           r.Headers,
		MultiValueHeaders: r.MultiValueHeaders,
	}

	body := make(map[string]any, len(r.Body)+1)
	for k, v := range r.Body {
		body[k] = v
	}
	if len(r.ErrorMessages) > 0 {
		body["errors"] = r.ErrorMessages
	}
	if len(body) == 0 {
		return mapped
	}

	raw, err := json.Marshal(body)
	if err != nil {
		mapped.StatusCode = http.StatusInternalServerError
		mapped.Body = `{"errors":["Failed to encode the response body"]}`
		return mapped
	}
	mapped.Body = string(raw)
	return mapped
}
