package handlers

import (
	"context"
	"net/http"

	"github.com/juliuskrahn/blog-backend/middleware"
)

// adminLogin lets the frontend verify an admin key without mutating anything:
// 200 when the registered caller is the admin, 400 otherwise.
func (h *Handler) adminLogin(ctx context.Context, req *middleware.Request) *middleware.Response {
	isAdmin, err := req.Auth.IsAdmin()
	if err != nil {
		h.log.Error("Admin login ran before user registration", "err", err)
		return middleware.NewErrorResponse(http.StatusInternalServerError, "Internal server error")
	}
	if isAdmin {
		return middleware.NewResponse(http.StatusOK)
	}
	return middleware.NewResponse(http.StatusBadRequest)
}
