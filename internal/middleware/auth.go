package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/api/transport"
	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/internal/auth"
)

// UserIDHeader carries the verified user identifier to downstream handlers.
// It is always overwritten by the middleware, never trusted from the client.
const UserIDHeader = "X-User-ID"

// JWTAuth verifies the bearer token on every protected request and rejects
// unauthenticated callers with a 401 envelope, which the client treats as the
// signal to discard its cached session.
func JWTAuth(verifier auth.TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Del(UserIDHeader)

			userID, err := verifier.Verify(BearerToken(ctx))
			if err != nil {
				logger.Warn("request rejected", zap.String("path", string(ctx.Path())), zap.Error(err))
				respondUnauthorized(ctx)
				return
			}

			ctx.Request.Header.Set(UserIDHeader, userID)
			next(ctx)
		}
	}
}

// BearerToken extracts the token from the Authorization header, tolerating a
// missing "Bearer" prefix.
func BearerToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func respondUnauthorized(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), domain.ErrInvalidToken.Message, nil))
	ctx.SetBody(body)
}
