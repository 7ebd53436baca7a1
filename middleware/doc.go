// Package middleware normalizes API Gateway proxy events into typed requests,
// applies an ordered chain of cross-cutting stages (user registration, admin
// guard, schema binding) and maps handler results back to the wire format.
//
// A handler is composed like this, with Wrap outermost:
//
//	raw := middleware.Wrap("article-create", verifier, log,
//		middleware.Chain(handle,
//			middleware.RegisterUser(log),
//			middleware.AdminGuard(log),
//			middleware.Data(schema, log),
//		))
//
// Authentication state is request-scoped: Wrap attaches a fresh Authenticator
// to every request. Only the admin credential itself is process-scoped, cached
// write-once by the Verifier.
package middleware
