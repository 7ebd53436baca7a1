// The lambda binary is the AWS Lambda entrypoint. One function deployment
// serves exactly one endpoint, selected by the BLOG_HANDLER environment
// variable; all functions share this binary.
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/common"
	"github.com/juliuskrahn/blog-backend/handlers"
	"github.com/juliuskrahn/blog-backend/middleware"
	"github.com/juliuskrahn/blog-backend/storage"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   os.Getenv("LOG_DEBUG") == "true",
		JSON:    true,
		Service: common.PackageName,
		Version: common.Version,
	})

	handlerName := os.Getenv("BLOG_HANDLER")
	if handlerName == "" {
		logger.Error("BLOG_HANDLER is not set")
		os.Exit(1)
	}

	sess := session.Must(session.NewSession())
	db := dynamodb.New(sess)

	articles := blog.NewArticleTable(storage.NewTable(db, envOr("ARTICLE_TABLE", "blog-article"), logger))
	comments := blog.NewCommentTable(storage.NewTable(db, envOr("COMMENT_TABLE", "blog-comment"), logger))
	secrets := storage.NewSecretsManagerSource(secretsmanager.New(sess))
	verifier := middleware.NewVerifier(secrets, envOr("ADMIN_KEY_SECRET_ID", "blog-admin-key"))

	handler := handlers.New(articles, comments, verifier, logger)
	route, ok := handler.Route(handlerName)
	if !ok {
		logger.Error("Unknown handler name", "handler", handlerName)
		os.Exit(1)
	}

	logger.Info("Starting Lambda handler", "handler", route.Name)
	lambda.Start(route.Raw)
}
