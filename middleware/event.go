package middleware

import (
	"encoding/json"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

// Event is the mapped API Gateway proxy event.
//
// Every optional field of the raw event defaults to an empty map or string so
// handlers never have to nil-check. Query string, multi-value query string and
// path parameter values are URL-decoded. The body is parsed as a JSON object;
// a missing, unparsable or non-object body degrades to an empty map and is
// left for schema binding to reject if fields are required.
type Event struct {
	Resource                        string
	Path                            string
	Method                          string
	Headers                         map[string]string
	MultiValueHeaders               map[string][]string
	QueryStringParameters           map[string]string
	MultiValueQueryStringParameters map[string][]string
	PathParameters                  map[string]string
	StageVariables                  map[string]string
	RequestContext                  events.APIGatewayProxyRequestContext
	Body                            map[string]any
	IsBase64Encoded                 bool
}

// NewEvent maps a raw API Gateway event into an Event. It never fails;
// malformed input degrades to safe empty values.
func NewEvent(raw events.APIGatewayProxyRequest) *Event {
	e := &Event{
		Resource:                        raw.Resource,
		Path:                            raw.Path,
		Method:                          raw.HTTPMethod,
		Headers:                         raw.Headers,
		MultiValueHeaders:               raw.MultiValueHeaders,
		QueryStringParameters:           unquoteValues(raw.QueryStringParameters),
		MultiValueQueryStringParameters: unquoteMultiValues(raw.MultiValueQueryStringParameters),
		PathParameters:                  unquoteValues(raw.PathParameters),
		StageVariables:                  raw.StageVariables,
		RequestContext:                  raw.RequestContext,
		Body:                            parseBody(raw.Body),
		IsBase64Encoded:                 raw.IsBase64Encoded,
	}
	if e.Headers == nil {
		e.Headers = map[string]string{}
	}
	if e.MultiValueHeaders == nil {
		e.MultiValueHeaders = map[string][]string{}
	}
	if e.StageVariables == nil {
		e.StageVariables = map[string]string{}
	}
	return e
}

func parseBody(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}

func unquoteValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = unquote(v)
	}
	return out
}

func unquoteMultiValues(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, vs := range in {
		decoded := make([]string, len(vs))
		for i, v := range vs {
			decoded[i] = unquote(v)
		}
		out[k] = decoded
	}
	return out
}

// unquote URL-decodes a single value, keeping the raw value when it is not
// valid percent-encoding. PathUnescape rather than QueryUnescape: a literal
// '+' in a parameter value must stay a '+'.
func unquote(v string) string {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}
