// The localserver binary serves the blog API over plain HTTP for local
// development and self-hosted setups, backed by a local DynamoDB endpoint and
// a pluggable secret source.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/google/uuid"
	"github.com/juliuskrahn/blog-backend/blog"
	"github.com/juliuskrahn/blog-backend/common"
	"github.com/juliuskrahn/blog-backend/handlers"
	"github.com/juliuskrahn/blog-backend/httpserver"
	"github.com/juliuskrahn/blog-backend/middleware"
	"github.com/juliuskrahn/blog-backend/storage"
	"github.com/urfave/cli/v2"
)

var flags []cli.Flag = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8080",
		Usage: "address to listen on for the API",
	},
	&cli.StringFlag{
		Name:  "metrics-addr",
		Value: "127.0.0.1:8090",
		Usage: "address to listen on for Prometheus metrics",
	},
	&cli.StringFlag{
		Name:  "aws-region",
		Value: "eu-central-1",
		Usage: "AWS region for DynamoDB and Secrets Manager",
	},
	&cli.StringFlag{
		Name:  "dynamo-endpoint",
		Value: "",
		Usage: "DynamoDB endpoint override, e.g. http://127.0.0.1:8000 for dynamodb-local",
	},
	&cli.StringFlag{
		Name:  "article-table",
		Value: "blog-article",
		Usage: "name of the article table",
	},
	&cli.StringFlag{
		Name:  "comment-table",
		Value: "blog-comment",
		Usage: "name of the comment table",
	},
	&cli.StringFlag{
		Name:  "secret-source",
		Value: "static",
		Usage: "where to read the admin key from: 'aws', 'vault' or 'static'",
	},
	&cli.StringFlag{
		Name:  "admin-key-secret-id",
		Value: "blog-admin-key",
		Usage: "name of the admin key secret",
	},
	&cli.StringFlag{
		Name:  "admin-key",
		Value: "",
		Usage: "admin key value (required if secret-source is 'static')",
	},
	&cli.StringFlag{
		Name:  "vault-addr",
		Value: "http://127.0.0.1:8200",
		Usage: "Vault server address (if secret-source is 'vault')",
	},
	&cli.StringFlag{
		Name:    "vault-token",
		Value:   "",
		Usage:   "Vault token (if secret-source is 'vault')",
		EnvVars: []string{"VAULT_TOKEN"},
	},
	&cli.StringFlag{
		Name:  "vault-mount",
		Value: "secret",
		Usage: "Vault KV v2 mount path (if secret-source is 'vault')",
	},
	&cli.BoolFlag{
		Name:  "log-json",
		Value: false,
		Usage: "log in JSON format",
	},
	&cli.BoolFlag{
		Name:  "log-debug",
		Value: false,
		Usage: "log debug messages",
	},
	&cli.BoolFlag{
		Name:  "log-uid",
		Value: false,
		Usage: "generate a uuid and add to all log messages",
	},
	&cli.StringFlag{
		Name:  "log-service",
		Value: common.PackageName,
		Usage: "add 'service' tag to logs",
	},
	&cli.BoolFlag{
		Name:  "pprof",
		Value: false,
		Usage: "enable pprof debug endpoint",
	},
	&cli.Int64Flag{
		Name:  "drain-seconds",
		Value: 45,
		Usage: "seconds to wait in drain HTTP request",
	},
}

func main() {
	app := &cli.App{
		Name:  "blog-localserver",
		Usage: "Serve the blog API over plain HTTP",
		Flags: flags,
		Action: func(cCtx *cli.Context) error {
			logger := common.SetupLogger(&common.LoggingOpts{
				Debug:   cCtx.Bool("log-debug"),
				JSON:    cCtx.Bool("log-json"),
				Service: cCtx.String("log-service"),
				Version: common.Version,
			})
			if cCtx.Bool("log-uid") {
				logger = logger.With("uid", uuid.Must(uuid.NewRandom()).String())
			}

			awsCfg := aws.Config{Region: aws.String(cCtx.String("aws-region"))}
			if endpoint := cCtx.String("dynamo-endpoint"); endpoint != "" {
				awsCfg.Endpoint = aws.String(endpoint)
			}
			sess, err := session.NewSession(&awsCfg)
			if err != nil {
				logger.Error("Failed to create AWS session", "err", err)
				return err
			}
			db := dynamodb.New(sess)

			var secrets middleware.SecretSource
			switch source := cCtx.String("secret-source"); source {
			case "aws":
				secrets = storage.NewSecretsManagerSource(secretsmanager.New(sess))
			case "vault":
				secrets, err = storage.NewVaultSource(
					cCtx.String("vault-addr"),
					cCtx.String("vault-token"),
					cCtx.String("vault-mount"),
				)
				if err != nil {
					logger.Error("Failed to create Vault secret source", "err", err)
					return err
				}
			case "static":
				if cCtx.String("admin-key") == "" {
					logger.Error("admin-key is required when secret-source is 'static'")
					return cli.Exit("admin-key is required", 1)
				}
				secrets = storage.StaticSource{
					cCtx.String("admin-key-secret-id"): cCtx.String("admin-key"),
				}
			default:
				logger.Error("Invalid secret-source", "source", source)
				return cli.Exit("invalid secret-source: "+source, 1)
			}

			articles := blog.NewArticleTable(storage.NewTable(db, cCtx.String("article-table"), logger))
			comments := blog.NewCommentTable(storage.NewTable(db, cCtx.String("comment-table"), logger))
			verifier := middleware.NewVerifier(secrets, cCtx.String("admin-key-secret-id"))

			srv := httpserver.New(&httpserver.Config{
				ListenAddr:               cCtx.String("listen-addr"),
				MetricsAddr:              cCtx.String("metrics-addr"),
				EnablePprof:              cCtx.Bool("pprof"),
				Log:                      logger,
				DrainDuration:            time.Duration(cCtx.Int64("drain-seconds")) * time.Second,
				GracefulShutdownDuration: 30 * time.Second,
				ReadTimeout:              60 * time.Second,
				WriteTimeout:             30 * time.Second,
			}, handlers.New(articles, comments, verifier, logger))
			srv.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			srv.Shutdown()
			logger.Info("Server shutdown complete")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
