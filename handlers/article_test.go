package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleBody(key string) map[string]any {
	body := map[string]any{
		"urlTitle":    "why-go",
		"title":       "Why Go",
		"description": "A look at the language",
		"tag":         "programming",
		"content":     "Lorem ipsum",
	}
	if key != "" {
		body["key"] = key
	}
	return body
}

func TestArticleLifecycle(t *testing.T) {
	env := newTestEnv()

	status, _ := env.invoke(t, "article-create", articleBody(testAdminKey), nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := env.invoke(t, "article-get", nil, map[string]string{"articleUrlTitle": "why-go"})
	require.Equal(t, http.StatusOK, status)
	article := body["article"].(map[string]any)
	assert.Equal(t, "Why Go", article["title"])
	assert.Equal(t, "programming", article["tag"])
	assert.NotEmpty(t, article["published"])
	published := article["published"]

	status, body = env.invoke(t, "article-get-collection", nil, nil)
	require.Equal(t, http.StatusOK, status)
	articles := body["articles"].([]any)
	require.Len(t, articles, 1)
	description := articles[0].(map[string]any)
	assert.Equal(t, "why-go", description["urlTitle"])
	assert.NotContains(t, description, "content")

	update := articleBody(testAdminKey)
	update["title"] = "Why Go, revisited"
	delete(update, "urlTitle")
	status, _ = env.invoke(t, "article-update", update, map[string]string{"articleUrlTitle": "why-go"})
	require.Equal(t, http.StatusOK, status)

	status, body = env.invoke(t, "article-get", nil, map[string]string{"articleUrlTitle": "why-go"})
	require.Equal(t, http.StatusOK, status)
	article = body["article"].(map[string]any)
	assert.Equal(t, "Why Go, revisited", article["title"])
	assert.Equal(t, published, article["published"])

	status, _ = env.invoke(t, "article-delete", map[string]any{"key": testAdminKey}, map[string]string{"articleUrlTitle": "why-go"})
	require.Equal(t, http.StatusOK, status)

	status, body = env.invoke(t, "article-get", nil, map[string]string{"articleUrlTitle": "why-go"})
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, []any{"Article does not exist"}, body["errors"])
}

func TestArticleCreateRequiresAdminKey(t *testing.T) {
	env := newTestEnv()

	status, body := env.invoke(t, "article-create", articleBody(""), nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Len(t, body["errors"], 1)

	status, _ = env.invoke(t, "article-create", articleBody("wrong"), nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.invoke(t, "article-get-collection", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.articles.items)
}

func TestArticleCreateValidation(t *testing.T) {
	env := newTestEnv()

	incomplete := articleBody(testAdminKey)
	delete(incomplete, "title")
	status, body := env.invoke(t, "article-create", incomplete, nil)
	require.Equal(t, http.StatusBadRequest, status)

	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	pair := errs[0].([]any)
	require.Len(t, pair, 2)
	assert.Equal(t, "Request validation failed", pair[0])
	assert.Contains(t, pair[1], "Title")
}

func TestArticleValidationRequiresAdminKeyFirst(t *testing.T) {
	env := newTestEnv()

	// Invalid payload and no credential: the 401 wins over the 400.
	status, _ := env.invoke(t, "article-create", map[string]any{"urlTitle": "why-go"}, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestArticleUpdateMissing(t *testing.T) {
	env := newTestEnv()

	update := articleBody(testAdminKey)
	delete(update, "urlTitle")
	status, body := env.invoke(t, "article-update", update, map[string]string{"articleUrlTitle": "missing"})
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, []any{"Article does not exist"}, body["errors"])
}

func TestArticleDeleteMissingIsOK(t *testing.T) {
	env := newTestEnv()

	status, _ := env.invoke(t, "article-delete", map[string]any{"key": testAdminKey}, map[string]string{"articleUrlTitle": "missing"})
	require.Equal(t, http.StatusOK, status)
}
