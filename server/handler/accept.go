package handler

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	adapterwebsocket "arena/server/adapter/websocket"
	"arena/server/domain"
)

// AcceptHandler はWebSocket接続を受け付け、セッションをルームにつなぐ
type AcceptHandler struct {
	pubsub domain.PubSub
	roomID domain.RoomID
	config domain.EndpointConfig
}

func NewAcceptHandler(pubsub domain.PubSub, roomID domain.RoomID, config domain.EndpointConfig) *AcceptHandler {
	return &AcceptHandler{pubsub: pubsub, roomID: roomID, config: config}
}

func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // 開発用: Origin チェックをスキップ
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}

	session := domain.NewSession()
	transport := adapterwebsocket.NewTransportFrom(conn)
	connection := domain.NewConnection(session.ID(), transport)
	endpoint, err := domain.NewSessionEndpoint(session, connection, h.pubsub, h.roomID, h.config)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session endpoint", "err", err)
		connection.Close("initialization failed")
		return
	}
	slog.DebugContext(ctx, "accepted new connection", "sessionID", session.ID())
	if err := endpoint.Run(); err != nil {
		slog.ErrorContext(ctx, "failed to run session endpoint", "sessionID", session.ID(), "err", err)
	}
}
