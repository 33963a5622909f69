// Package common contains shared constants and errors used across
// gophchat components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer session token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the session token in AuthorizationHeaderName.
const BearerScheme = "Bearer"
