package notify

import (
	"context"
	"log/slog"
	"time"

	"arena/server/domain"
	"arena/server/game"
)

//go:generate go tool mockgen -destination=./mocks/broadcaster_mock.go -package=mocks . Broadcaster

// Broadcaster は接続中の全クライアントへの送信先です。domain.Roomが実装します。
type Broadcaster interface {
	Broadcast(ctx context.Context, channel domain.Channel, data []byte)
}

// PacketNotifier はゲーム内の状態変化を通知メッセージにエンコードして配信する。
// ヘッダーのseqは通知ごとに1ずつ増える。
type PacketNotifier struct {
	broadcaster Broadcaster
	seq         uint16
	now         func() time.Time
}

var _ game.Notifier = (*PacketNotifier)(nil)

func NewPacketNotifier(broadcaster Broadcaster) *PacketNotifier {
	return &PacketNotifier{
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (n *PacketNotifier) NotifyTeleport(ctx context.Context, u *game.Unit, position domain.Position2D) {
	payload := domain.TeleportPayload{
		UnitID:   u.NetID().Bytes(),
		Position: position,
	}
	n.send(ctx, domain.NotifyTeleport, payload.Encode())
}

func (n *PacketNotifier) NotifyDash(ctx context.Context, u *game.Unit, target domain.Position2D, speed, leapHeight float32) {
	payload := domain.DashPayload{
		UnitID:     u.NetID().Bytes(),
		Target:     target,
		Speed:      speed,
		LeapHeight: leapHeight,
	}
	n.send(ctx, domain.NotifyDash, payload.Encode())
}

func (n *PacketNotifier) NotifyAddBuff(ctx context.Context, b *game.Buff) {
	payload := domain.BuffAddPayload{
		TargetID: b.Target().NetID().Bytes(),
		Duration: float32(b.Duration().Seconds()),
		Stacks:   b.Stacks(),
		Name:     b.Name(),
	}
	if src := b.Source(); src != nil {
		payload.SourceID = src.NetID().Bytes()
	}
	n.send(ctx, domain.NotifyBuffAdd, payload.Encode())
}

func (n *PacketNotifier) NotifyParticleSpawn(ctx context.Context, owner *game.Champion, particle string, target *game.Target) {
	payload := domain.ParticleSpawnPayload{
		OwnerID:    owner.NetID().Bytes(),
		TargetKind: domain.ParticleTargetPoint,
		Position:   target.Position(),
		Particle:   particle,
	}
	if u, ok := target.Unit(); ok {
		payload.TargetKind = domain.ParticleTargetUnit
		payload.TargetID = u.NetID().Bytes()
	}
	n.send(ctx, domain.NotifyParticleSpawn, payload.Encode())
}

func (n *PacketNotifier) NotifySetAnimation(ctx context.Context, u *game.Unit, animations []string) {
	payload := domain.SetAnimationPayload{
		UnitID:     u.NetID().Bytes(),
		Animations: animations,
	}
	n.send(ctx, domain.NotifySetAnimation, payload.Encode())
}

func (n *PacketNotifier) NotifyItemBought(ctx context.Context, c *game.Champion, item *game.Item) {
	payload := domain.ItemBoughtPayload{
		ChampionID: c.NetID().Bytes(),
		ItemID:     item.Type.ID,
		Slot:       item.Slot,
		Stacks:     item.Stacks,
	}
	n.send(ctx, domain.NotifyItemBought, payload.Encode())
}

func (n *PacketNotifier) NotifyDebugMessage(ctx context.Context, message string) {
	payload := domain.DebugMessagePayload{Message: message}
	n.send(ctx, domain.NotifyDebugMessage, payload.Encode())
}

func (n *PacketNotifier) BroadcastRaw(ctx context.Context, payload []byte) {
	slog.DebugContext(ctx, "notify: raw payload", "size", len(payload))
	n.broadcaster.Broadcast(ctx, domain.ChannelS2C, payload)
}

func (n *PacketNotifier) send(ctx context.Context, kind domain.NotifyKind, body []byte) {
	n.seq++
	header := domain.Header{
		Version:   domain.ProtocolVersion,
		Seq:       n.seq,
		Timestamp: domain.Timestamp(n.now()),
	}
	payloadHeader := domain.PayloadHeader{
		DataType: domain.DataTypeNotify,
		SubType:  uint8(kind),
	}
	slog.DebugContext(ctx, "notify", "kind", kind, "seq", n.seq)
	n.broadcaster.Broadcast(ctx, domain.ChannelS2C, domain.EncodeMessage(header, payloadHeader, body))
}
