package handlers

import (
	"context"
	"net/http"

	"github.com/juliuskrahn/blog-backend/middleware"
)

func (h *Handler) defaultNotFound(_ context.Context, _ *middleware.Request) *middleware.Response {
	return middleware.NewErrorResponse(http.StatusNotFound,
		"This endpoint does not exist. API documentation: https://app.swaggerhub.com/apis/julius-krahn/blog")
}
