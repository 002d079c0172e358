// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the record service, translating HTTP concerns to business operations.
//
// Errors never reach clients verbatim: MapErrorToStatusCode picks the status
// and GetSafeErrorMessage the message, while the full error is redacted and
// logged with the request's trace ID.
package api
