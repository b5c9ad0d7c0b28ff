package handlers

import (
	"strings"

	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

// authSkipPaths are reachable without a session: the login endpoint
// itself plus the probes.
var authSkipPaths = []string{"/api/v1/login", "/health", "/metrics"}

type TokenValidator interface {
	Validate(token string) error
}

// SessionMiddleware guards every route behind a valid session token.
func SessionMiddleware(v TokenValidator) xhttp.MiddlewareFunc {
	return func(next xhttp.RequestHandler) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) {
			path := string(ctx.Path())
			for _, p := range authSkipPaths {
				if strings.HasPrefix(path, p) {
					next(ctx)
					return
				}
			}

			if err := v.Validate(sessionToken(ctx)); err != nil {
				writeError(ctx, xhttp.StatusUnauthorized, "invalid or missing session token")
				return
			}
			next(ctx)
		}
	}
}
