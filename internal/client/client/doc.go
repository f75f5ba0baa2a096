// Package client contains the client's connection to the Notflix backend.
//
// # Overview
//
// The package provides:
//  1. The API contract the core depends on: Auth (sign-up, sign-in, session
//     restore, sign-out, password change, account deletion) and Store (rows
//     of profiles, titles, watchlist and history), combined in Client.
//  2. A gRPC implementation (see GRPCClient) that injects the access token
//     via an interceptor, transparently refreshes an expired token once, and
//     maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Status codes map onto the sentinels in package common, so callers match
// with errors.Is: NotFound is common.ErrorNotFound, AlreadyExists is
// common.ErrorAlreadyExists, InvalidArgument matches common.ErrorValidation,
// Unauthenticated is ErrUnauthorized (or common.ErrRefreshTokenExpired), and
// Unavailable/DeadlineExceeded are ErrUnavailable.
//
// # Concurrency
//
// GRPCClient is safe for concurrent use; token state is guarded by a mutex
// and concurrent refreshes are collapsed into one.
package client
