// Package context carries per-call credentials for remote MCP endpoints.
package context

import (
	"context"
	"os"
)

type authTokenKey struct{}

// WithAuthToken attaches a bearer token to ctx. An empty token leaves ctx
// unchanged.
func WithAuthToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, authTokenKey{}, token)
}

// AuthToken returns the token attached to ctx.
func AuthToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey{}).(string)
	return token, ok && token != ""
}

// WithEnvToken attaches the token held by the environment variable name.
func WithEnvToken(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return WithAuthToken(ctx, os.Getenv(name))
}
