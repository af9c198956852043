package middleware

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/techgit41/Advanced-Todo-App/domain"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v stubVerifier) Verify(string) (string, error) {
	return v.userID, v.err
}

func TestJWTAuthSetsUserHeader(t *testing.T) {
	t.Parallel()

	var seen string
	handler := JWTAuth(stubVerifier{userID: "user-1"}, nil)(func(ctx *fasthttp.RequestCtx) {
		seen = string(ctx.Request.Header.Peek(UserIDHeader))
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer some-token")
	// a client-supplied identity header must never survive
	ctx.Request.Header.Set(UserIDHeader, "user-666")

	handler(&ctx)
	require.Equal(t, "user-1", seen)
}

func TestJWTAuthRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	called := false
	handler := JWTAuth(stubVerifier{err: domain.ErrInvalidToken}, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set("Authorization", "Bearer expired")

	handler(&ctx)
	require.False(t, called)
	require.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())

	var envelope struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	require.False(t, envelope.Success)
	require.Equal(t, "UNAUTHORIZED", envelope.Code)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	var ctx fasthttp.RequestCtx
	require.Empty(t, BearerToken(&ctx))

	ctx.Request.Header.Set("Authorization", "Bearer abc.def.ghi")
	require.Equal(t, "abc.def.ghi", BearerToken(&ctx))

	// raw token without the scheme is accepted as-is
	ctx.Request.Header.Set("Authorization", "abc.def.ghi")
	require.Equal(t, "abc.def.ghi", BearerToken(&ctx))
}
