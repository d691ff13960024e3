package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrBackpressure は書き込みチャネルが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write channel is full, apply backpressure")
	// ErrInitializationFailed はセッションエンドポイントの初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize session endpoint")
	// ErrEndpointClosed は閉じたエンドポイントに送信しようとした場合に返されるエラーです。
	ErrEndpointClosed = errors.New("session endpoint is closed")
)

// EndpointConfig はSessionEndpointの動作パラメータです。
type EndpointConfig struct {
	HeartbeatInterval time.Duration
	IdleTimeout       time.Duration
}

type SessionEndpoint struct {
	ctx    context.Context
	cancel context.CancelFunc

	session    *Session
	connection *Connection
	pubsub     PubSub
	roomID     RoomID
	config     EndpointConfig

	ctrlCh  chan endpointEvent // 制御用チャネル
	writeCh chan outbound      // 書き込み用チャネル

	// lifecycle
	closed atomic.Bool
}

var _ Sender = (*SessionEndpoint)(nil)

func NewSessionEndpoint(session *Session, connection *Connection, pubsub PubSub, roomID RoomID, config EndpointConfig) (*SessionEndpoint, error) {
	if session == nil || connection == nil || pubsub == nil {
		return nil, ErrInitializationFailed
	}
	if roomID.IsEmpty() {
		return nil, ErrInitializationFailed
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionEndpoint{
		ctx:        ctx,
		cancel:     cancel,
		session:    session,
		connection: connection,
		pubsub:     pubsub,
		roomID:     roomID,
		config:     config,
		ctrlCh:     make(chan endpointEvent, 16),
		writeCh:    make(chan outbound, 1024),
	}, nil
}

func (se *SessionEndpoint) Run() error {
	// 自分宛のメッセージを購読
	sessionTopic := SessionTopic(se.session.ID())
	msgCh := se.pubsub.Subscribe(sessionTopic)
	defer se.pubsub.Unsubscribe(sessionTopic, msgCh)

	heartbeat := NewHeartbeatService(se.config.HeartbeatInterval, se.session.ID(), se)

	eg, ctx := errgroup.WithContext(se.ctx)
	eg.Go(func() error {
		se.ownerLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.readLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.writeLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.subscribeLoop(ctx, msgCh)
		return nil
	})
	eg.Go(func() error {
		heartbeat.Run(ctx)
		return nil
	})

	// セッションID通知を送信してからルームに参加する
	if err := se.Send(ChannelHandshake, EncodeAssignMessage(se.session.ID())); err != nil {
		se.close("assign failed")
		_ = eg.Wait()
		return err
	}
	se.pubsub.Publish(ctx, RoomControlTopic(se.roomID), Message{
		SessionID: se.session.ID(),
		Data:      EncodeJoinMessage(se.session.ID()),
	})

	return eg.Wait()
}

// Send はメッセージを書き込みキューに積む。満杯の場合はErrBackpressureを返す。
func (se *SessionEndpoint) Send(channel Channel, data []byte) error {
	if se.closed.Load() {
		return ErrEndpointClosed
	}
	select {
	case se.writeCh <- outbound{channel: channel, data: data}:
		return nil
	default:
		return ErrBackpressure
	}
}

func (se *SessionEndpoint) Close(ctx context.Context) {
	se.sendCtrlEvent(ctx, endpointEvent{kind: evClose})
}

// ownerLoop は論理セッションの状態を監視し、必要に応じて接続の管理を行います。
func (se *SessionEndpoint) ownerLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-se.ctrlCh:
			se.handleControlEvent(ctx, ev)
		case <-ticker.C:
			if idle, reason := se.session.IsIdle(se.config.IdleTimeout); idle {
				se.handleControlEvent(ctx, endpointEvent{
					kind: evClose,
					err:  errors.New(reason.String()),
				})
			}
		}
	}
}

func (se *SessionEndpoint) readLoop(ctx context.Context) {
	for {
		data, err := se.connection.Read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				se.sendCtrlEvent(ctx, endpointEvent{kind: evReadError, err: err})
			}
			return
		}
		se.session.TouchRead()
		se.handleData(ctx, data)
	}
}

func (se *SessionEndpoint) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case out := <-se.writeCh:
			if err := se.connection.WriteFrame(ctx, out.channel, out.data); err != nil {
				slog.WarnContext(ctx, "session write failed", "sessionID", se.session.ID(), "err", err)
				continue
			}
			se.session.TouchWrite()
		}
	}
}

// subscribeLoop はpubsubからのメッセージをwriteChに転送します。
func (se *SessionEndpoint) subscribeLoop(ctx context.Context, msgCh <-chan Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			if err := se.Send(msg.Channel, msg.Data); err != nil {
				slog.WarnContext(ctx, "subscribeLoop: message dropped", "sessionID", se.session.ID(), "err", err)
			}
		}
	}
}

func (se *SessionEndpoint) close(reason string) {
	if !se.closed.CompareAndSwap(false, true) {
		return
	}
	// ルームに離脱を通知してから接続を閉じる
	se.pubsub.Publish(context.Background(), RoomControlTopic(se.roomID), Message{
		SessionID: se.session.ID(),
		Data:      EncodeLeaveMessage(se.session.ID()),
	})
	se.cancel()
	se.session.Close()
	se.connection.Close(reason)
}

func (se *SessionEndpoint) handleData(ctx context.Context, data []byte) {
	header, err := ParseHeader(data)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse header", "err", err)
		return
	}
	if header.SessionID != se.session.ID().Bytes() {
		slog.WarnContext(ctx, "session ID mismatch", "expected", se.session.ID(), "got", SessionIDFromBytes(header.SessionID))
		return
	}
	payloadHeader, err := ParsePayloadHeader(data[HeaderSize:])
	if err != nil {
		slog.WarnContext(ctx, "failed to parse payload header", "err", err)
		return
	}

	switch payloadHeader.DataType {
	case DataTypeControl:
		se.handleControlMessage(ctx, ControlSubType(payloadHeader.SubType))
	case DataTypeInput, DataTypeChat:
		// データメッセージをroom topicに転送
		se.pubsub.Publish(ctx, RoomTopic(se.roomID), Message{
			SessionID: se.session.ID(),
			Channel:   ChannelC2S,
			Data:      data,
		})
	default:
		slog.WarnContext(ctx, "unknown data type", "dataType", payloadHeader.DataType)
	}
}

func (se *SessionEndpoint) handleControlMessage(ctx context.Context, subType ControlSubType) {
	switch subType {
	case ControlSubTypePong:
		se.sendCtrlEvent(ctx, endpointEvent{kind: evPong})
	case ControlSubTypeLeave:
		se.sendCtrlEvent(ctx, endpointEvent{kind: evClose})
	default:
		slog.DebugContext(ctx, "ignored control message", "sessionID", se.session.ID(), "subType", subType)
	}
}

// handleControlEvent は制御チャネルからのイベントを処理し論理セッションの状態を更新する唯一の関数です。
func (se *SessionEndpoint) handleControlEvent(ctx context.Context, ev endpointEvent) {
	switch ev.kind {
	case evClose:
		reason := "closed"
		if ev.err != nil {
			reason = ev.err.Error()
		}
		slog.InfoContext(ctx, "session closing", "sessionID", se.session.ID(), "reason", reason)
		se.close(reason)
	case evPong:
		se.session.TouchPong()
	case evReadError:
		slog.InfoContext(ctx, "session read failed", "sessionID", se.session.ID(), "err", ev.err)
		se.close("read error")
	default:
		slog.WarnContext(ctx, "unknown endpoint event kind", "kind", ev.kind)
	}
}

func (se *SessionEndpoint) sendCtrlEvent(ctx context.Context, ev endpointEvent) {
	select {
	case se.ctrlCh <- ev:
	case <-ctx.Done():
	}
}
