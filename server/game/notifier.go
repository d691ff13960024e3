package game

import (
	"context"

	"arena/server/domain"
)

//go:generate go tool mockgen -destination=./mocks/notifier_mock.go -package=mocks . Notifier

// Notifier はクライアントから見える状態変化を全クライアントに通知します。
// 1回の操作で発生した通知は呼び出し順に配送されます。
type Notifier interface {
	NotifyTeleport(ctx context.Context, u *Unit, position domain.Position2D)
	NotifyDash(ctx context.Context, u *Unit, target domain.Position2D, speed, leapHeight float32)
	NotifyAddBuff(ctx context.Context, b *Buff)
	NotifyParticleSpawn(ctx context.Context, owner *Champion, particle string, target *Target)
	NotifySetAnimation(ctx context.Context, u *Unit, animations []string)
	NotifyItemBought(ctx context.Context, c *Champion, item *Item)
	NotifyDebugMessage(ctx context.Context, message string)
	// BroadcastRaw はpayloadを加工せずに送信する
	BroadcastRaw(ctx context.Context, payload []byte)
}
