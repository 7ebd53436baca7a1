// Package handlers contains one business handler per API endpoint and wires
// each one into its middleware chain.
package handlers

import (
	"log/slog"

	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/middleware"
)

// Handler bundles the dependencies shared by all endpoint handlers.
type Handler struct {
	articles blog.ArticleStore
	comments blog.CommentStore
	verifier *middleware.Verifier
	log      *slog.Logger
}

// New creates a Handler with the given stores, admin verifier and logger.
func New(articles blog.ArticleStore, comments blog.CommentStore, verifier *middleware.Verifier, log *slog.Logger) *Handler {
	return &Handler{
		articles: articles,
		comments: comments,
		verifier: verifier,
		log:      log,
	}
}

// wrap assembles the full chain for one endpoint. Stages apply in declaration
// order, outermost first.
func (h *Handler) wrap(name string, fn middleware.Handler, stages ...middleware.Stage) middleware.RawHandler {
	return middleware.Wrap(name, h.verifier, h.log, middleware.Chain(fn, stages...))
}
