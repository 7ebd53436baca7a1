package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagEndpoints(t *testing.T) {
	env := newTestEnv()

	for _, article := range []map[string]any{
		{"urlTitle": "why-go", "title": "Why Go", "description": "d", "tag": "programming", "content": "c"},
		{"urlTitle": "dynamo-tips", "title": "Dynamo Tips", "description": "d", "tag": "aws", "content": "c"},
		{"urlTitle": "go-generics", "title": "Go Generics", "description": "d", "tag": "programming", "content": "c"},
	} {
		article["key"] = testAdminKey
		status, _ := env.invoke(t, "article-create", article, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := env.invoke(t, "tag-get-collection", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"aws", "programming"}, body["tags"])

	status, body = env.invoke(t, "tag-get-article-collection", nil, map[string]string{"tagName": "programming"})
	require.Equal(t, http.StatusOK, status)
	articles := body["articles"].([]any)
	require.Len(t, articles, 2)
	for _, a := range articles {
		assert.Equal(t, "programming", a.(map[string]any)["tag"])
	}
}

func TestTagCollectionEmpty(t *testing.T) {
	env := newTestEnv()

	status, body := env.invoke(t, "tag-get-collection", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["tags"])
}
