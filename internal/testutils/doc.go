// Package testutils provides fixtures and assertions shared by the unit tests
// of the record service, the HTTP layer and the Postgres store.
//
// Nothing in this package touches a real database; use testdb for that.
package testutils
