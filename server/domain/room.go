package domain

import (
	"context"
	"log/slog"
	"time"
)

type RoomID string

func (id RoomID) String() string { return string(id) }

func (id RoomID) IsEmpty() bool { return id == "" }

// DefaultTickInterval はシミュレーションの既定のtick間隔 (30Hz)
const DefaultTickInterval = time.Second / 30

// Room は1つのシミュレーションを所有するゴルーチンです。
// join/leave・受信メッセージ・tickはすべてRunのゴルーチン上で処理されるため、
// Applicationはロックなしで状態を扱えます。
type Room struct {
	ID      RoomID
	members []SessionID
	joined  map[SessionID]struct{}

	pubsub       PubSub
	tickInterval time.Duration
}

func NewRoom(id RoomID, pubsub PubSub, tickInterval time.Duration) *Room {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Room{
		ID:           id,
		joined:       make(map[SessionID]struct{}),
		pubsub:       pubsub,
		tickInterval: tickInterval,
	}
}

// Broadcast は参加中の全セッションにメッセージを送信する。
// 参加順に配送するため、1回の操作で発生した通知の順序は全クライアントで一致する。
func (r *Room) Broadcast(ctx context.Context, channel Channel, data []byte) {
	for _, sessionID := range r.members {
		r.SendTo(ctx, sessionID, channel, data)
	}
}

func (r *Room) SendTo(ctx context.Context, sessionID SessionID, channel Channel, data []byte) {
	r.pubsub.Publish(ctx, SessionTopic(sessionID), Message{Channel: channel, Data: data})
}

// Members は参加中のセッションを参加順で返す
func (r *Room) Members() []SessionID {
	out := make([]SessionID, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Room) Run(ctx context.Context, application Application) error {
	// room宛のメッセージを購読
	roomTopic := RoomTopic(r.ID)
	msgCh := r.pubsub.Subscribe(roomTopic)
	defer r.pubsub.Unsubscribe(roomTopic, msgCh)

	// room制御用トピックを購読（join/leave）
	ctrlTopic := RoomControlTopic(r.ID)
	ctrlCh := r.pubsub.Subscribe(ctrlTopic)
	defer r.pubsub.Unsubscribe(ctrlTopic, ctrlCh)

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			// 制御メッセージを処理（join/leave）
		CTRL_LOOP:
			for {
				select {
				case ctrl := <-ctrlCh:
					r.handleControlMessage(ctx, application, ctrl)
				default:
					break CTRL_LOOP
				}
			}
			// 受信メッセージを処理
		RECEIVE_LOOP:
			for {
				select {
				case msg := <-msgCh:
					if _, ok := r.joined[msg.SessionID]; !ok {
						slog.WarnContext(ctx, "room: message from non-member dropped", "sessionID", msg.SessionID)
						continue
					}
					// アプリケーションロジックが担当する
					if err := application.HandleMessage(ctx, msg.SessionID, msg.Data); err != nil {
						slog.WarnContext(ctx, "room handle message failed", "err", err)
					}
				default:
					break RECEIVE_LOOP
				}
			}
			application.Tick(ctx, now.Sub(last))
			last = now
		}
	}
}

// handleControlMessage はjoin/leave制御メッセージを処理します。
func (r *Room) handleControlMessage(ctx context.Context, application Application, msg Message) {
	if len(msg.Data) < HeaderSize+PayloadHeaderSize {
		slog.WarnContext(ctx, "room: malformed control message", "sessionID", msg.SessionID)
		return
	}
	payloadHeader, err := ParsePayloadHeader(msg.Data[HeaderSize:])
	if err != nil || payloadHeader.DataType != DataTypeControl {
		slog.WarnContext(ctx, "room: unexpected control payload", "sessionID", msg.SessionID)
		return
	}

	switch ControlSubType(payloadHeader.SubType) {
	case ControlSubTypeJoin:
		if _, ok := r.joined[msg.SessionID]; ok {
			return
		}
		// Join中に発生した通知が参加者本人にも届くよう先にメンバーへ加える
		r.joined[msg.SessionID] = struct{}{}
		r.members = append(r.members, msg.SessionID)
		if err := application.Join(ctx, msg.SessionID); err != nil {
			r.removeMember(msg.SessionID)
			slog.WarnContext(ctx, "room: join rejected", "sessionID", msg.SessionID, "err", err)
			return
		}
		slog.InfoContext(ctx, "session joined room", "sessionID", msg.SessionID, "roomID", r.ID)
	case ControlSubTypeLeave:
		if _, ok := r.joined[msg.SessionID]; !ok {
			return
		}
		r.removeMember(msg.SessionID)
		application.Leave(ctx, msg.SessionID)
		slog.InfoContext(ctx, "session left room", "sessionID", msg.SessionID, "roomID", r.ID)
	default:
	}
}

func (r *Room) removeMember(sessionID SessionID) {
	delete(r.joined, sessionID)
	for i, id := range r.members {
		if id == sessionID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}
