package handlers

import (
	"context"
	"net/http"

	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/middleware"
)

const commentNotFoundMessage = "Comment does not exist"

// Comment and reply authors may not call themselves "admin" unless the caller
// actually registered as admin; impostors get a marked author name.
const impostorSuffix = "#not-the-real-admin"

func authorName(req *middleware.Request, author string) (string, error) {
	if author != "admin" {
		return author, nil
	}
	isAdmin, err := req.Auth.IsAdmin()
	if err != nil {
		return "", err
	}
	if !isAdmin {
		return author + impostorSuffix, nil
	}
	return author, nil
}

type commentListModel struct {
	ArticleURLTitle string `mapstructure:"articleUrlTitle" validate:"required"`
}

func commentListSchema(req *middleware.Request) (any, error) {
	var m commentListModel
	if err := req.Decode(map[string]any{"articleUrlTitle": req.Event.PathParameters["articleUrlTitle"]}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) commentGetCollection(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*commentListModel)
	comments, err := h.comments.ForArticle(ctx, m.ArticleURLTitle)
	if err != nil {
		h.log.Error("Comment listing failed", "articleUrlTitle", m.ArticleURLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewBodyResponse(http.StatusOK, map[string]any{"comments": comments})
}

type commentCreateModel struct {
	ArticleURLTitle string `mapstructure:"articleUrlTitle" validate:"required"`
	Author          string `mapstructure:"author" validate:"required"`
	Content         string `mapstructure:"content" validate:"required"`
}

func commentCreateSchema(req *middleware.Request) (any, error) {
	var m commentCreateModel
	fields := req.BodyFields(map[string]string{"articleUrlTitle": "articleUrlTitle"})
	if err := req.Decode(fields, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) commentCreate(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*commentCreateModel)
	author, err := authorName(req, m.Author)
	if err != nil {
		h.log.Error("Author check ran before user registration", "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	id, err := h.comments.Create(ctx, blog.Comment{
		ArticleURLTitle: m.ArticleURLTitle,
		Author:          author,
		Content:         m.Content,
	})
	if err != nil {
		h.log.Error("Comment create failed", "articleUrlTitle", m.ArticleURLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewBodyResponse(http.StatusCreated, map[string]any{"id": id})
}

type commentDeleteModel struct {
	ArticleURLTitle string `mapstructure:"articleUrlTitle" validate:"required"`
	CommentID       string `mapstructure:"commentId" validate:"required"`
}

func commentDeleteSchema(req *middleware.Request) (any, error) {
	var m commentDeleteModel
	fields := map[string]any{
		"articleUrlTitle": req.Event.PathParameters["articleUrlTitle"],
		"commentId":       req.Event.PathParameters["commentId"],
	}
	if err := req.Decode(fields, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) commentDelete(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*commentDeleteModel)
	if err := h.comments.Delete(ctx, m.ArticleURLTitle, m.CommentID); err != nil {
		h.log.Error("Comment delete failed", "articleUrlTitle", m.ArticleURLTitle, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewResponse(http.StatusOK)
}
