package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/middleware"
	"github.com/juliuskrahn/blog-backend/storage"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "hunter2"

// fakeArticles is an in-memory ArticleStore with the same contract as the
// DynamoDB-backed table.
type fakeArticles struct {
	mu    sync.Mutex
	items map[string]blog.Article
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{items: map[string]blog.Article{}}
}

func (f *fakeArticles) Get(_ context.Context, urlTitle string) (*blog.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	article, ok := f.items[urlTitle]
	if !ok {
		return nil, blog.ErrNotFound
	}
	return &article, nil
}

func (f *fakeArticles) Put(_ context.Context, article blog.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[article.URLTitle] = article
	return nil
}

func (f *fakeArticles) Update(_ context.Context, article blog.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.items[article.URLTitle]
	if !ok {
		return blog.ErrNotFound
	}
	article.Published = existing.Published
	f.items[article.URLTitle] = article
	return nil
}

func (f *fakeArticles) Delete(_ context.Context, urlTitle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, urlTitle)
	return nil
}

func (f *fakeArticles) Descriptions(_ context.Context) ([]blog.ArticleDescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var descriptions []blog.ArticleDescription
	for _, a := range f.items {
		descriptions = append(descriptions, blog.ArticleDescription{
			URLTitle:    a.URLTitle,
			Title:       a.Title,
			Description: a.Description,
			Tag:         a.Tag,
			Published:   a.Published,
		})
	}
	sort.Slice(descriptions, func(i, j int) bool {
		return descriptions[i].Published > descriptions[j].Published
	})
	return descriptions, nil
}

func (f *fakeArticles) ByTag(_ context.Context, tag string) ([]blog.ArticleDescription, error) {
	all, _ := f.Descriptions(context.Background())
	var tagged []blog.ArticleDescription
	for _, d := range all {
		if d.Tag == tag {
			tagged = append(tagged, d)
		}
	}
	return tagged, nil
}

func (f *fakeArticles) Tags(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var tags []string
	for _, a := range f.items {
		if !seen[a.Tag] {
			seen[a.Tag] = true
			tags = append(tags, a.Tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// fakeComments is an in-memory CommentStore keyed by (articleUrlTitle, id).
type fakeComments struct {
	mu    sync.Mutex
	items map[string]map[string]blog.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{items: map[string]map[string]blog.Comment{}}
}

func (f *fakeComments) ForArticle(_ context.Context, articleURLTitle string) ([]blog.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var comments []blog.Comment
	for _, c := range f.items[articleURLTitle] {
		comments = append(comments, c)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (f *fakeComments) Create(_ context.Context, comment blog.Comment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = blog.NewCommentID()
	if comment.Resps == nil {
		comment.Resps = map[string]blog.Resp{}
	}
	if f.items[comment.ArticleURLTitle] == nil {
		f.items[comment.ArticleURLTitle] = map[string]blog.Comment{}
	}
	f.items[comment.ArticleURLTitle][comment.ID] = comment
	return comment.ID, nil
}

func (f *fakeComments) Delete(_ context.Context, articleURLTitle, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[articleURLTitle], id)
	return nil
}

func (f *fakeComments) AddResp(_ context.Context, articleURLTitle, commentID, respID string, resp blog.Resp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.items[articleURLTitle][commentID]
	if !ok {
		return blog.ErrNotFound
	}
	comment.Resps[respID] = resp
	return nil
}

func (f *fakeComments) DeleteResp(_ context.Context, articleURLTitle, commentID, respID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.items[articleURLTitle][commentID]
	if !ok {
		return blog.ErrNotFound
	}
	delete(comment.Resps, respID)
	return nil
}

type testEnv struct {
	handler  *Handler
	articles *fakeArticles
	comments *fakeComments
}

func newTestEnv() *testEnv {
	articles := newFakeArticles()
	comments := newFakeComments()
	verifier := middleware.NewVerifier(storage.StaticSource{"blog-admin-key": testAdminKey}, "blog-admin-key")
	return &testEnv{
		handler:  New(articles, comments, verifier, slog.New(slog.DiscardHandler)),
		articles: articles,
		comments: comments,
	}
}

// invoke dispatches one raw gateway event to the named endpoint and decodes
// the response body.
func (e *testEnv) invoke(t *testing.T, name string, body map[string]any, pathParams map[string]string) (int, map[string]any) {
	t.Helper()
	route, ok := e.handler.Route(name)
	require.True(t, ok, "unknown route %q", name)

	raw := events.APIGatewayProxyRequest{PathParameters: pathParams}
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		raw.Body = string(encoded)
	}

	resp, err := route.Raw(context.Background(), raw)
	require.NoError(t, err)

	var decoded map[string]any
	if resp.Body != "" {
		require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
	}
	return resp.StatusCode, decoded
}
