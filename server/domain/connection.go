package domain

import "context"

// Connection は物理的な接続を表します。
type Connection struct {
	SessionID SessionID
	transport Transport
}

func NewConnection(sessionID SessionID, transport Transport) *Connection {
	return &Connection{
		SessionID: sessionID,
		transport: transport,
	}
}

// WriteFrame はチャネル付きのフレームとしてメッセージを書き込む
func (c *Connection) WriteFrame(ctx context.Context, channel Channel, message []byte) error {
	return c.transport.Write(ctx, EncodeFrame(channel, message))
}

func (c *Connection) Read(ctx context.Context) ([]byte, error) {
	return c.transport.Read(ctx)
}

func (c *Connection) Close(reason string) {
	_ = c.transport.Close(CloseNormal, reason)
}
