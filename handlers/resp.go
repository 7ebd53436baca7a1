package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/middleware"
)

type respCreateModel struct {
	ArticleURLTitle string `mapstructure:"articleUrlTitle" validate:"required"`
	CommentID       string `mapstructure:"commentId" validate:"required"`
	Author          string `mapstructure:"author" validate:"required"`
	Content         string `mapstructure:"content" validate:"required"`
}

func respCreateSchema(req *middleware.Request) (any, error) {
	var m respCreateModel
	fields := req.BodyFields(map[string]string{
		"articleUrlTitle": "articleUrlTitle",
		"commentId":       "commentId",
	})
	if err := req.Decode(fields, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) respCreate(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*respCreateModel)
	author, err := authorName(req, m.Author)
	if err != nil {
		h.log.Error("Author check ran before user registration", "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	id := blog.NewCommentID()
	err = h.comments.AddResp(ctx, m.ArticleURLTitle, m.CommentID, id, blog.Resp{
		Author:  author,
		Content: m.Content,
	})
	if errors.Is(err, blog.ErrNotFound) {
		return middleware.NewErrorResponse(http.StatusNotFound, commentNotFoundMessage)
	}
	if err != nil {
		h.log.Error("Resp create failed", "commentId", m.CommentID, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	return middleware.NewBodyResponse(http.StatusCreated, map[string]any{"id": id})
}

type respDeleteModel struct {
	ArticleURLTitle string `mapstructure:"articleUrlTitle" validate:"required"`
	CommentID       string `mapstructure:"commentId" validate:"required"`
	RespID          string `mapstructure:"respId" validate:"required"`
}

func respDeleteSchema(req *middleware.Request) (any, error) {
	var m respDeleteModel
	fields := map[string]any{
		"articleUrlTitle": req.Event.PathParameters["articleUrlTitle"],
		"commentId":       req.Event.PathParameters["commentId"],
		"respId":          req.Event.PathParameters["respId"],
	}
	if err := req.Decode(fields, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) respDelete(ctx context.Context, req *middleware.Request) *middleware.Response {
	m := req.Data.(*respDeleteModel)
	err := h.comments.DeleteResp(ctx, m.ArticleURLTitle, m.CommentID, m.RespID)
	if err != nil && !errors.Is(err, blog.ErrNotFound) {
		h.log.Error("Resp delete failed", "commentId", m.CommentID, "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	// Removing a reply from a missing comment is a no-op, like the other
	// delete endpoints.
	return middleware.NewResponse(http.StatusOK)
}
