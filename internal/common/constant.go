// Package common contains shared constants and sentinel errors used across
// Notflix components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName carries the per-call correlation id.
const RequestIDHeaderName = "x-request-id"

const (
	MinPasswordLength = 6

	MinProfileNameLength = 3
	MaxProfileNameLength = 20
	MaxProfiles          = 5
)
