package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/middleware"
)

const articleNotFoundMessage = "Article does not exist"

type articleGetModel struct {
	URLTitle string `mapstructure:"urlTitle" validate:"required"`
}

func articleGetSchema(req *middleware.Request) (any, error) {
	var m articleGetModel
	if err := req.Decode(map[string]any{"urlTitle": req.Event.PathParameters["articleUrlTitle"]}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) articleGet(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*articleGetModel)
	article, err := h.articles.Get(ctx, m.URLTitle)
	if errors.Is(err, blog.ErrNotFound) {
		return middleware.NewErrorResponse(http.StatusNotFound, articleNotFoundMessage)
	}
	if err != nil {
		h.log.Error("Article lookup failed", "urlTitle", m.URLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewBodyResponse(http.StatusOK, map[string]any{"article": article})
}

func (h *Handler) articleGetCollection(ctx context.Context, req *middleware.Request) *middleware.Response {
	descriptions, err := h.articles.Descriptions(ctx)
	if err != nil {
		h.log.Error("Article listing failed", "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewBodyResponse(http.StatusOK, map[string]any{"articles": descriptions})
}

type articleCreateModel struct {
	URLTitle    string `mapstructure:"urlTitle" validate:"required"`
	Title       string `mapstructure:"title" validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
	Tag         string `mapstructure:"tag" validate:"required"`
	Content     string `mapstructure:"content" validate:"required"`
}

func articleCreateSchema(req *middleware.Request) (any, error) {
	var m articleCreateModel
	if err := req.Decode(req.BodyFields(nil), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) articleCreate(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*articleCreateModel)
	err := h.articles.Put(ctx, blog.Article{
		URLTitle:    m.URLTitle,
		Title:       m.Title,
		Description: m.Description,
		Tag:         m.Tag,
		Content:     m.Content,
		Published:   time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		h.log.Error("Article create failed", "urlTitle", m.URLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewResponse(http.StatusCreated)
}

type articleUpdateModel = articleCreateModel

func articleUpdateSchema(req *middleware.Request) (any, error) {
	var m articleUpdateModel
	fields := req.BodyFields(map[string]string{"urlTitle": "articleUrlTitle"})
	if err := req.Decode(fields, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) articleUpdate(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*articleUpdateModel)
	err := h.articles.Update(ctx, blog.Article{
		URLTitle:    m.URLTitle,
		Title:       m.Title,
		Description: m.Description,
		Tag:         m.Tag,
		Content:     m.Content,
	})
	if errors.Is(err, blog.ErrNotFound) {
		return middleware.NewErrorResponse(http.StatusNotFound, articleNotFoundMessage)
	}
	if err != nil {
		h.log.Error("Article update failed", "urlTitle", m.URLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewResponse(http.StatusOK)
}

type articleDeleteModel = articleGetModel

func articleDeleteSchema(req *middleware.Request) (any, error) {
	return articleGetSchema(req)
}

func (h *Handler) articleDelete(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*articleDeleteModel)
	if err := h.articles.Delete(ctx, m.URLTitle); err != nil {
		h.log.Error("Article delete failed", "urlTitle", m.URLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewResponse(http.StatusOK)
}
