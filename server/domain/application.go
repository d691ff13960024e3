package domain

import (
	"context"
	"time"
)

// Application はRoomのゴルーチン上で駆動されるシミュレーション本体です。
type Application interface {
	// Join はセッションの参加を受け付ける。エラーを返すと参加は拒否される。
	Join(ctx context.Context, sessionID SessionID) error
	Leave(ctx context.Context, sessionID SessionID)
	HandleMessage(ctx context.Context, sessionID SessionID, data []byte) error
	// Tick は前回のtickからの経過時間で呼ばれる
	Tick(ctx context.Context, diff time.Duration)
}
