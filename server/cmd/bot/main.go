package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/coder/websocket"

	"arena/server/application"
	"arena/server/domain"
)

type botConfig struct {
	ServerURL string `env:"SERVER_URL" envDefault:"ws://localhost:9090/ws"`
	BotCount  int    `env:"BOT_COUNT" envDefault:"3"`
	// CommandInterval ごとにチャットコマンドを送る。0なら送らない。
	CommandInterval time.Duration `env:"BOT_COMMAND_INTERVAL" envDefault:"10s"`
}

var botCommands = []string{".heal", ".gold 100", ".dash", ".buff"}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg botConfig
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parse env", "err", err)
		os.Exit(1)
	}
	slog.Info("starting bots", "count", cfg.BotCount, "server", cfg.ServerURL)

	var wg sync.WaitGroup
	for i := range cfg.BotCount {
		wg.Go(func() {
			runBot(ctx, cfg, i)
		})
	}

	wg.Wait()
	slog.Info("all bots stopped")
}

func runBot(ctx context.Context, cfg botConfig, id int) {
	logger := slog.With("botID", id)

	for {
		if ctx.Err() != nil {
			return
		}
		err := botSession(ctx, cfg, logger)
		if err != nil && ctx.Err() == nil {
			logger.Warn("bot session ended, reconnecting", "err", err)
			time.Sleep(2 * time.Second)
		}
	}
}

// bot はサーバーから割り当てられたセッションIDで入力とチャットを送る
type bot struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu        sync.Mutex
	sessionID domain.SessionID
	seq       uint16
}

func botSession(ctx context.Context, cfg botConfig, logger *slog.Logger) error {
	conn, _, err := websocket.Dial(ctx, cfg.ServerURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()
	logger.Info("connected")

	b := &bot{conn: conn, logger: logger}
	readErr := make(chan error, 1)
	go func() { readErr <- b.readLoop(ctx) }()

	moveTicker := time.NewTicker(500 * time.Millisecond)
	defer moveTicker.Stop()
	var commands <-chan time.Time
	if cfg.CommandInterval > 0 {
		commandTicker := time.NewTicker(cfg.CommandInterval)
		defer commandTicker.Stop()
		commands = commandTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "shutdown")
			return nil
		case err := <-readErr:
			return err
		case <-moveTicker.C:
			keys := []uint32{0, application.KeyUp, application.KeyDown, application.KeyLeft, application.KeyRight}
			input := &domain.InputPayload{KeyMask: keys[rand.IntN(len(keys))] | keys[rand.IntN(len(keys))]}
			if err := b.send(ctx, domain.DataTypeInput, input.Encode()); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		case <-commands:
			chat := &domain.ChatPayload{Text: botCommands[rand.IntN(len(botCommands))]}
			if err := b.send(ctx, domain.DataTypeChat, chat.Encode()); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (b *bot) readLoop(ctx context.Context) error {
	for {
		_, frame, err := b.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		channel, message, err := domain.ParseFrame(frame)
		if err != nil || len(message) < domain.HeaderSize+domain.PayloadHeaderSize {
			continue
		}
		header, err := domain.ParseHeader(message)
		if err != nil {
			continue
		}
		payloadHeader, err := domain.ParsePayloadHeader(message[domain.HeaderSize:])
		if err != nil {
			continue
		}

		switch payloadHeader.DataType {
		case domain.DataTypeControl:
			switch domain.ControlSubType(payloadHeader.SubType) {
			case domain.ControlSubTypeAssign:
				b.mu.Lock()
				b.sessionID = domain.SessionIDFromBytes(header.SessionID)
				b.mu.Unlock()
				b.logger.Info("session assigned", "sessionID", b.sessionID)
			case domain.ControlSubTypePing:
				pong := domain.EncodeControlMessage(domain.SessionIDFromBytes(header.SessionID), domain.ControlSubTypePong)
				if err := b.conn.Write(ctx, websocket.MessageBinary, pong); err != nil {
					return fmt.Errorf("pong: %w", err)
				}
			}
		case domain.DataTypeNotify:
			b.logger.Debug("notification", "channel", channel, "kind", domain.NotifyKind(payloadHeader.SubType))
		}
	}
}

func (b *bot) send(ctx context.Context, dataType domain.DataType, body []byte) error {
	b.mu.Lock()
	if b.sessionID.IsZero() {
		b.mu.Unlock()
		return nil
	}
	b.seq++
	header := domain.Header{
		Version:   domain.ProtocolVersion,
		SessionID: b.sessionID.Bytes(),
		Seq:       b.seq,
		Timestamp: domain.Timestamp(time.Now()),
	}
	b.mu.Unlock()

	msg := domain.EncodeMessage(header, domain.PayloadHeader{DataType: dataType}, body)
	return b.conn.Write(ctx, websocket.MessageBinary, msg)
}
