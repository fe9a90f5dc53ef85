// Package errors provides classified error primitives used across celerity-docs.
//
// A ClassifiedError carries a category, a severity, a retry strategy and a
// structured context. Errors are constructed with the fluent ErrorBuilder and
// presented by the HTTP and CLI adapters, which map categories to status codes
// and exit codes respectively.
//
// Example usage:
//
//	err := errors.NotFoundError("page not found").
//		WithContext("slug", strings.Join(slug, "/")).
//		Build()
package errors
