// Package common holds build metadata and logger setup shared by all binaries.
package common

// PackageName identifies the project in logs and metrics.
const PackageName = "blog-backend"

// Version is set at build time via -ldflags.
var Version = "dev"
