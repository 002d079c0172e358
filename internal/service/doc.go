// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the record
// store (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and never
// depend on a specific store implementation. They validate input, shape store
// results into pages and wrap unexpected errors with the failing operation;
// the API layer maps those errors to HTTP status codes.
package service
