package handlers

import (
	"context"
	"net/http"

	"github.com/juliuskrahn/blog-backend/middleware"
)

func (h *Handler) tagGetCollection(ctx context.Context, req *middleware.Request) *middleware.Response {
	tags, err := h.articles.Tags(ctx)
	if err != nil {
		h.log.Error("Tag listing failed", "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	if tags == nil {
		tags = []string{}
	}
	return middleware.NewBodyResponse(http.StatusOK, map[string]any{"tags": tags})
}

type tagArticlesModel struct {
	TagName string `mapstructure:"tagName" validate:"required"`
}

func tagArticlesSchema(req *middleware.Request) (any, error) {
	var m tagArticlesModel
	if err := req.Decode(map[string]any{"tagName": req.Event.PathParameters["tagName"]}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) tagGetArticleCollection(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*tagArticlesModel)
	articles, err := h.articles.ByTag(ctx, m.TagName)
	if err != nil {
		h.log.Error("Tagged article listing failed", "tag", m.TagName, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewBodyResponse(http.StatusOK, map[string]any{"articles": articles})
}
