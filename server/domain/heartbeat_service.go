package domain

import (
	"context"
	"log/slog"
	"time"
)

// Sender はチャネル付きでメッセージを送信できる送信先です。
type Sender interface {
	Send(channel Channel, data []byte) error
}

// HeartbeatService は定期的にpingメッセージを送信する死活監視サービスです。
type HeartbeatService struct {
	pingInterval time.Duration
	sessionID    SessionID
	sender       Sender
}

// NewHeartbeatService は新しいHeartbeatServiceを生成します。
func NewHeartbeatService(pingInterval time.Duration, sessionID SessionID, sender Sender) *HeartbeatService {
	return &HeartbeatService{
		pingInterval: pingInterval,
		sessionID:    sessionID,
		sender:       sender,
	}
}

// Run はpingInterval間隔でpingメッセージを送信します。
// ctxがキャンセルされると終了します。送信先が詰まっている場合pingは破棄されます。
func (h *HeartbeatService) Run(ctx context.Context) {
	if h.pingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.sender.Send(ChannelLowPriority, EncodePingMessage(h.sessionID)); err != nil {
				slog.WarnContext(ctx, "heartbeat: ping dropped", "sessionID", h.sessionID, "err", err)
				continue
			}
			slog.DebugContext(ctx, "heartbeat: ping sent", "sessionID", h.sessionID)
		}
	}
}
