package handlers

import (
	"net/http"

	"github.com/juliuskrahn/blog-backend/middleware"
)

// Route binds one endpoint to its fully wrapped handler. Pattern is a
// chi-style path template matching the API Gateway resource; the default
// (catch-all) route carries an empty pattern.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Raw     middleware.RawHandler
}

// Routes assembles every endpoint with its middleware chain. On guarded
// endpoints RegisterUser precedes AdminGuard, and AdminGuard precedes Data: an
// unauthorized caller always receives a 401 before any validation detail.
func (h *Handler) Routes() []Route {
	register := middleware.RegisterUser(h.log)
	guard := middleware.AdminGuard(h.log)
	data := func(schema middleware.SchemaFunc) middleware.Stage {
		return middleware.Data(schema, h.log)
	}

	return []Route{
		{
			Name: "article-get-collection", Method: http.MethodGet, Pattern: "/article",
			Raw: h.wrap("article-get-collection", h.articleGetCollection),
		},
		{
			Name: "article-get", Method: http.MethodGet, Pattern: "/article/{articleUrlTitle}",
			Raw: h.wrap("article-get", h.articleGet, data(articleGetSchema)),
		},
		{
			Name: "article-create", Method: http.MethodPost, Pattern: "/article",
			Raw: h.wrap("article-create", h.articleCreate, register, guard, data(articleCreateSchema)),
		},
		{
			Name: "article-update", Method: http.MethodPatch, Pattern: "/article/{articleUrlTitle}",
			Raw: h.wrap("article-update", h.articleUpdate, register, guard, data(articleUpdateSchema)),
		},
		{
			Name: "article-delete", Method: http.MethodDelete, Pattern: "/article/{articleUrlTitle}",
			Raw: h.wrap("article-delete", h.articleDelete, register, guard, data(articleDeleteSchema)),
		},
		{
			Name: "tag-get-collection", Method: http.MethodGet, Pattern: "/tag",
			Raw: h.wrap("tag-get-collection", h.tagGetCollection),
		},
		{
			Name: "tag-get-article-collection", Method: http.MethodGet, Pattern: "/tag/{tagName}",
			Raw: h.wrap("tag-get-article-collection", h.tagGetArticleCollection, data(tagArticlesSchema)),
		},
		{
			Name: "comment-get-collection", Method: http.MethodGet, Pattern: "/article/{articleUrlTitle}/comment",
			Raw: h.wrap("comment-get-collection", h.commentGetCollection, data(commentListSchema)),
		},
		{
			Name: "comment-create", Method: http.MethodPost, Pattern: "/article/{articleUrlTitle}/comment",
			Raw: h.wrap("comment-create", h.commentCreate, register, data(commentCreateSchema)),
		},
		{
			Name: "comment-delete", Method: http.MethodDelete, Pattern: "/article/{articleUrlTitle}/comment/{commentId}",
			Raw: h.wrap("comment-delete", h.commentDelete, register, guard, data(commentDeleteSchema)),
		},
		{
			Name: "resp-create", Method: http.MethodPost, Pattern: "/article/{articleUrlTitle}/comment/{commentId}/resp",
			Raw: h.wrap("resp-create", h.respCreate, register, data(respCreateSchema)),
		},
		{
			Name: "resp-delete", Method: http.MethodDelete, Pattern: "/article/{articleUrlTitle}/comment/{commentId}/resp/{respId}",
			Raw: h.wrap("resp-delete", h.respDelete, register, guard, data(respDeleteSchema)),
		},
		{
			Name: "admin-login", Method: http.MethodPost, Pattern: "/admin-login",
			Raw: h.wrap("admin-login", h.adminLogin, register),
		},
		{
			Name: "default",
			Raw:  h.wrap("default", h.defaultNotFound),
		},
	}
}

// Route looks up one endpoint by name.
func (h *Handler) Route(name string) (Route, bool) {
	for _, route := range h.Routes() {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}
