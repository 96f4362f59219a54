// Package errors defines the error taxonomy shared by the stream engine and
// its adapters: coded AppError values with HTTP status mapping and
// retryability, plus the upstream/operator failure classes raised by
// composed streams.
package errors
