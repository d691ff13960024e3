package domain

import (
	"context"
	"log/slog"
	"sync"
)

//go:generate go tool mockgen -destination=./mocks/pubsub_mock.go -package=mocks . PubSub

// Topic はpubsubの宛先
type Topic string

func SessionTopic(id SessionID) Topic {
	return Topic("session:" + id.String())
}

func RoomTopic(id RoomID) Topic {
	return Topic("room:" + id.String())
}

func RoomControlTopic(id RoomID) Topic {
	return Topic("room:" + id.String() + ":ctrl")
}

// Message はpubsubで配送される単位
type Message struct {
	SessionID SessionID
	Channel   Channel
	Data      []byte
}

// PubSub はセッションとルームの間のメッセージ配送を担当します。
type PubSub interface {
	Publish(ctx context.Context, topic Topic, msg Message)
	Subscribe(topic Topic) <-chan Message
	Unsubscribe(topic Topic, ch <-chan Message)
}

const subscriberBufferSize = 256

// SimplePubSub はプロセス内で完結するPubSub実装です。
// 購読者のバッファが満杯の場合、そのメッセージは破棄されます。
type SimplePubSub struct {
	mu          sync.RWMutex
	subscribers map[Topic][]chan Message
}

var _ PubSub = (*SimplePubSub)(nil)

func NewSimplePubSub() *SimplePubSub {
	return &SimplePubSub{
		subscribers: make(map[Topic][]chan Message),
	}
}

func (p *SimplePubSub) Publish(ctx context.Context, topic Topic, msg Message) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, ch := range p.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			slog.WarnContext(ctx, "pubsub: subscriber full, message dropped", "topic", topic)
		}
	}
}

func (p *SimplePubSub) Subscribe(topic Topic) <-chan Message {
	ch := make(chan Message, subscriberBufferSize)
	p.mu.Lock()
	p.subscribers[topic] = append(p.subscribers[topic], ch)
	p.mu.Unlock()
	return ch
}

func (p *SimplePubSub) Unsubscribe(topic Topic, ch <-chan Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	subs := p.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			p.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			close(sub)
			break
		}
	}
	if len(p.subscribers[topic]) == 0 {
		delete(p.subscribers, topic)
	}
}
