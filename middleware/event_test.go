package middleware

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func TestNewEventDefaults(t *testing.T) {
	event := NewEvent(events.APIGatewayProxyRequest{})

	assert.Equal(t, "", event.Resource)
	assert.Equal(t, "", event.Path)
	assert.Equal(t, "", event.Method)
	assert.Equal(t, map[string]string{}, event.Headers)
	assert.Equal(t, map[string][]string{}, event.MultiValueHeaders)
	assert.Equal(t, map[string]string{}, event.QueryStringParameters)
	assert.Equal(t, map[string][]string{}, event.MultiValueQueryStringParameters)
	assert.Equal(t, map[string]string{}, event.PathParameters)
	assert.Equal(t, map[string]string{}, event.StageVariables)
	assert.Equal(t, map[string]any{}, event.Body)
	assert.False(t, event.IsBase64Encoded)
}

func TestNewEventMapsFields(t *testing.T) {
	raw := events.APIGatewayProxyRequest{
		Resource:   "/article/{articleUrlTitle}",
		Path:       "/article/why-go",
		HTTPMethod: "GET",
		Headers:    map[string]string{"X-Request-Id": "abc"},
		MultiValueHeaders: map[string][]string{
			"Accept": {"application/json", "text/plain"},
		},
		QueryStringParameters:           map[string]string{"page": "1"},
		MultiValueQueryStringParameters: map[string][]string{"page": {"1", "2"}},
		PathParameters:                  map[string]string{"articleUrlTitle": "why-go"},
		StageVariables:                  map[string]string{"stage": "prod"},
		Body:                            `{"key":"1234","profile":{"email":"peter@email.com"}}`,
		IsBase64Encoded:                 true,
	}

	event := NewEvent(raw)

	assert.Equal(t, raw.Resource, event.Resource)
	assert.Equal(t, raw.Path, event.Path)
	assert.Equal(t, raw.HTTPMethod, event.Method)
	assert.Equal(t, raw.Headers, event.Headers)
	assert.Equal(t, raw.MultiValueHeaders, event.MultiValueHeaders)
	assert.Equal(t, map[string]string{"page": "1"}, event.QueryStringParameters)
	assert.Equal(t, map[string][]string{"page": {"1", "2"}}, event.MultiValueQueryStringParameters)
	assert.Equal(t, map[string]string{"articleUrlTitle": "why-go"}, event.PathParameters)
	assert.Equal(t, raw.StageVariables, event.StageVariables)
	assert.True(t, event.IsBase64Encoded)

	assert.Equal(t, "1234", event.Body["key"])
	assert.Equal(t, map[string]any{"email": "peter@email.com"}, event.Body["profile"])
}

func TestNewEventURLDecodesValues(t *testing.T) {
	event := NewEvent(events.APIGatewayProxyRequest{
		QueryStringParameters:           map[string]string{"q": "hello%20world"},
		MultiValueQueryStringParameters: map[string][]string{"q": {"a%2Fb", "c%3Dd"}},
		PathParameters:                  map[string]string{"articleUrlTitle": "caf%C3%A9"},
	})

	assert.Equal(t, "hello world", event.QueryStringParameters["q"])
	assert.Equal(t, []string{"a/b", "c=d"}, event.MultiValueQueryStringParameters["q"])
	assert.Equal(t, "café", event.PathParameters["articleUrlTitle"])
}

func TestNewEventKeepsInvalidEncodingVerbatim(t *testing.T) {
	event := NewEvent(events.APIGatewayProxyRequest{
		QueryStringParameters: map[string]string{"q": "100%zz"},
	})
	assert.Equal(t, "100%zz", event.QueryStringParameters["q"])
}

func TestNewEventBodyDegradesToEmptyMap(t *testing.T) {
	for name, body := range map[string]string{
		"absent":     "",
		"invalid":    "{not json",
		"non-object": "42",
		"null":       "null",
		"array":      `["a"]`,
	} {
		t.Run(name, func(t *testing.T) {
			event := NewEvent(events.APIGatewayProxyRequest{Body: body})
			assert.Equal(t, map[string]any{}, event.Body)
		})
	}
}
