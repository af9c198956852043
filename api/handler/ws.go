package handler

import (
	"net/http"

	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/api/transport"
	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/internal/auth"
	"github.com/techgit41/Advanced-Todo-App/internal/middleware"
	"github.com/techgit41/Advanced-Todo-App/internal/services/hub"
	"github.com/techgit41/Advanced-Todo-App/pkg/httpcontext"
)

// WSHandler upgrades authenticated clients to the live-update channel and
// pumps their subscriber stream until disconnect.
type WSHandler struct {
	baseHandler
	hub      *hub.Hub
	verifier auth.TokenVerifier
	upgrader websocket.FastHTTPUpgrader
}

func NewWSHandler(h *hub.Hub, verifier auth.TokenVerifier, adapter *httpcontext.Adapter, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		baseHandler: newBaseHandler(adapter, logger),
		hub:         h,
		verifier:    verifier,
		upgrader: websocket.FastHTTPUpgrader{
			// the session token is the gate, not the origin
			CheckOrigin: func(ctx *fasthttp.RequestCtx) bool { return true },
		},
	}
}

// @Summary Open the live-update channel
// @Tags todos
// @Router /api/ws [get]
func (h *WSHandler) Live(ctx *fasthttp.RequestCtx) {
	// Browsers cannot set headers on websocket handshakes, so the token is
	// accepted from the query string as well.
	token := string(ctx.QueryArgs().Peek("token"))
	if token == "" {
		token = middleware.BearerToken(ctx)
	}

	userID, err := h.verifier.Verify(token)
	if err != nil {
		h.respondJSON(ctx, http.StatusUnauthorized,
			transport.NewError(string(domain.ErrCodeUnauthorized), domain.ErrInvalidToken.Message, nil))
		return
	}

	err = h.upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		defer conn.Close()

		sub := h.hub.Subscribe(userID)
		defer h.hub.Unsubscribe(sub)

		// Reader loop only detects the peer going away; clients never send
		// application messages on this channel.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload, ok := <-sub.Events():
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
	}
}
