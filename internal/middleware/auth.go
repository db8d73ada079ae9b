package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/tasknote/backend/domain"
	authUC "github.com/tasknote/backend/usecase/auth"
)

// SessionAuth resolves the opaque session token (sid cookie or bearer
// token) to a user and forwards the user id to handlers via the X-User-ID
// request header. Expired sessions are removed by the resolve itself, so an
// old token simply stops authenticating.
func SessionAuth(auth *authUC.UseCase, cookieName string, timeout time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if cookieName == "" {
		cookieName = "sid"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := ExtractToken(ctx, cookieName)
			if token == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			user, err := auth.UserBySession(stdCtx, token)
			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
					logger.Error("session resolution failed", zap.Error(err))
					ctx.SetStatusCode(fasthttp.StatusInternalServerError)
					return
				}
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.Request.Header.Set("X-User-ID", user.ID)
			next(ctx)
		}
	}
}

// ExtractToken returns the session token carried by the request, preferring
// the session cookie over the Authorization header. Handlers that need the
// raw token (logout) share this so both transports behave the same.
func ExtractToken(ctx *fasthttp.RequestCtx, cookieName string) string {
	if cookie := string(ctx.Request.Header.Cookie(cookieName)); cookie != "" {
		return cookie
	}
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
