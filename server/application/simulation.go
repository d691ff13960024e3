package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"arena/server/domain"
	"arena/server/game"
	"arena/server/script"
	"arena/server/spatial"
)

//go:generate go tool mockgen -destination=./mocks/scripts_mock.go -package=mocks . Scripts

var (
	ErrRoomFull       = errors.New("room is full")
	ErrUnknownSession = errors.New("session has no player")
)

// スクリプトから呼ばれるフック関数
const (
	hookJoin    = "onJoin"
	hookLeave   = "onLeave"
	hookCommand = "onCommand"
	hookTick    = "onTick"
)

// commandPrefix で始まるチャットはonCommandフックに渡される
const commandPrefix = "."

// Scripts はゲームルールを実装したスクリプトの実行環境です。
type Scripts interface {
	HasFunction(name string) bool
	Call(ctx context.Context, fn string, args ...script.Value) ([]script.Value, error)
}

type Config struct {
	MaxPlayers    int
	ChampionModel string
	// MoveSpeed は入力による移動の速さ (単位/秒)
	MoveSpeed float32
}

// Simulation はRoomのゴルーチン上でGameを進めるApplicationです。
type Simulation struct {
	game    *game.Game
	spatial *spatial.Facade
	scripts Scripts
	config  Config

	// 最後に受け取った入力。tickごとに適用する。
	inputs map[*game.ClientInfo]uint32
}

var _ domain.Application = (*Simulation)(nil)

func NewSimulation(g *game.Game, facade *spatial.Facade, scripts Scripts, config Config) *Simulation {
	return &Simulation{
		game:    g,
		spatial: facade,
		scripts: scripts,
		config:  config,
		inputs:  make(map[*game.ClientInfo]uint32),
	}
}

// Join はチームを交互に割り当て、チームの出現地点にチャンピオンを置く
func (s *Simulation) Join(ctx context.Context, sessionID domain.SessionID) error {
	// 切断済みの枠は残るが定員には数えない
	if connected := s.game.ConnectedCount(); s.config.MaxPlayers > 0 && connected >= s.config.MaxPlayers {
		return fmt.Errorf("%w: %d players", ErrRoomFull, connected)
	}
	team := game.TeamBlue
	if s.game.PlayerCount()%2 == 1 {
		team = game.TeamPurple
	}
	champion := game.NewChampion(team, s.spawnPoint(team), s.config.ChampionModel)
	name := fmt.Sprintf("Player %d", s.game.PlayerCount()+1)
	client := s.game.AddPlayer(sessionID, name, champion)

	slog.InfoContext(ctx, "player joined", "sessionID", sessionID, "index", client.Index(), "team", team)
	s.callHook(ctx, hookJoin, script.Object(client), script.Object(champion))
	return nil
}

// Leave はクライアントを切断状態にする。ロスターの枠とインデックスは残る。
func (s *Simulation) Leave(ctx context.Context, sessionID domain.SessionID) {
	client, ok := s.game.PlayerBySession(sessionID)
	if !ok {
		return
	}
	client.SetConnected(false)
	delete(s.inputs, client)

	slog.InfoContext(ctx, "player left", "sessionID", sessionID, "index", client.Index())
	s.callHook(ctx, hookLeave, script.Object(client))
}

func (s *Simulation) HandleMessage(ctx context.Context, sessionID domain.SessionID, data []byte) error {
	client, ok := s.game.PlayerBySession(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}

	if _, err := domain.ParseHeader(data); err != nil {
		return err
	}
	payloadData := data[domain.HeaderSize:]
	payloadHeader, err := domain.ParsePayloadHeader(payloadData)
	if err != nil {
		return err
	}

	payload := payloadData[domain.PayloadHeaderSize:]
	switch payloadHeader.DataType {
	case domain.DataTypeInput:
		input, err := domain.ParseInputPayload(payload)
		if err != nil {
			return err
		}
		s.inputs[client] = input.KeyMask
	case domain.DataTypeChat:
		chat, err := domain.ParseChatPayload(payload)
		if err != nil {
			return err
		}
		s.handleChat(ctx, client, chat.Text)
	default:
		slog.WarnContext(ctx, "unknown data type", "dataType", payloadHeader.DataType)
	}
	return nil
}

func (s *Simulation) handleChat(ctx context.Context, client *game.ClientInfo, text string) {
	if strings.HasPrefix(text, commandPrefix) {
		s.callHook(ctx, hookCommand, script.Object(client), script.Object(client.Champion()), script.String(text))
		return
	}
	s.game.Notifier().NotifyDebugMessage(ctx, client.Name()+": "+text)
}

// Tick は入力による移動、ダッシュとバフの時間経過、onTickフックの順に進める
func (s *Simulation) Tick(ctx context.Context, diff time.Duration) {
	for client, keyMask := range s.inputs {
		s.applyInput(client.Champion(), keyMask, diff)
	}
	s.game.Update(diff)
	s.callHook(ctx, hookTick, script.Number(diff.Seconds()))
}

// callHook はスクリプトに関数が定義されていれば呼び出す。
// スクリプトのエラーはシミュレーションを止めない。
func (s *Simulation) callHook(ctx context.Context, hook string, args ...script.Value) {
	if s.scripts == nil || !s.scripts.HasFunction(hook) {
		return
	}
	if _, err := s.scripts.Call(ctx, hook, args...); err != nil {
		slog.WarnContext(ctx, "script hook failed", "hook", hook, "err", err)
	}
}

// spawnPoint はブルーを左下、パープルを右上の角の近くに出現させる
func (s *Simulation) spawnPoint(team game.TeamID) domain.Position2D {
	m := s.game.Map()
	p := domain.Position2D{X: m.Width() * 0.1, Y: m.Height() * 0.1}
	if team == game.TeamPurple {
		p = domain.Position2D{X: m.Width() * 0.9, Y: m.Height() * 0.9}
	}
	return s.spatial.ClosestWalkable(p)
}
