package server

import (
	"net/http"

	"arena/server/domain"
	"arena/server/handler"
)

func Route(pubsub domain.PubSub, roomID domain.RoomID, config domain.EndpointConfig) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", handler.NewAcceptHandler(pubsub, roomID, config))
	mux.Handle("GET /healthz", handler.NewHealthHandler())
	return mux
}
