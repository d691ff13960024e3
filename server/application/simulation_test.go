package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"arena/server/application"
	"arena/server/application/mocks"
	"arena/server/domain"
	"arena/server/game"
	gamemocks "arena/server/game/mocks"
	"arena/server/script"
	"arena/server/spatial"
)

type fixture struct {
	sim      *application.Simulation
	game     *game.Game
	scripts  *mocks.MockScripts
	notifier *gamemocks.MockNotifier
}

func newFixture(t *testing.T, config application.Config) *fixture {
	ctrl := gomock.NewController(t)
	scripts := mocks.NewMockScripts(ctrl)
	notifier := gamemocks.NewMockNotifier(ctrl)

	m := game.NewMap(100, 100, nil)
	g := game.NewGame(m, game.DefaultItemCatalog(), notifier)
	return &fixture{
		sim:      application.NewSimulation(g, spatial.NewFacade(m), scripts, config),
		game:     g,
		scripts:  scripts,
		notifier: notifier,
	}
}

func message(sessionID domain.SessionID, dataType domain.DataType, body []byte) []byte {
	return domain.EncodeMessage(
		domain.Header{Version: domain.ProtocolVersion, SessionID: sessionID.Bytes(), Seq: 1},
		domain.PayloadHeader{DataType: dataType},
		body,
	)
}

func TestSimulation_JoinAlternatesTeams(t *testing.T) {
	f := newFixture(t, application.Config{ChampionModel: "Ezreal"})
	f.scripts.EXPECT().HasFunction("onJoin").Return(true).Times(2)
	f.scripts.EXPECT().Call(gomock.Any(), "onJoin", gomock.Any(), gomock.Any()).Times(2)

	ctx := context.Background()
	first, second := domain.NewSessionID(), domain.NewSessionID()
	if err := f.sim.Join(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := f.sim.Join(ctx, second); err != nil {
		t.Fatal(err)
	}

	p0, _ := f.game.Player(0)
	p1, _ := f.game.Player(1)
	if p0.SessionID() != first || p1.SessionID() != second {
		t.Fatal("roster order does not follow join order")
	}
	if p0.Champion().Team() != game.TeamBlue || p1.Champion().Team() != game.TeamPurple {
		t.Errorf("teams = %v, %v", p0.Champion().Team(), p1.Champion().Team())
	}
	if p0.Champion().Model() != "Ezreal" {
		t.Errorf("model = %q", p0.Champion().Model())
	}
	if p0.Champion().Position() == p1.Champion().Position() {
		t.Error("teams share a spawn point")
	}
}

func TestSimulation_JoinPassesPlayerToHook(t *testing.T) {
	f := newFixture(t, application.Config{})
	f.scripts.EXPECT().HasFunction("onJoin").Return(true)
	f.scripts.EXPECT().
		Call(gomock.Any(), "onJoin", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args ...script.Value) ([]script.Value, error) {
			client, _ := args[0].AsObject()
			champion, _ := args[1].AsObject()
			ci, ok := client.(*game.ClientInfo)
			if !ok || ci.Champion() != champion {
				t.Errorf("hook args = %v", args)
			}
			return nil, nil
		})

	if err := f.sim.Join(context.Background(), domain.NewSessionID()); err != nil {
		t.Fatal(err)
	}
}

func TestSimulation_JoinRejectedWhenFull(t *testing.T) {
	f := newFixture(t, application.Config{MaxPlayers: 1})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false)

	ctx := context.Background()
	if err := f.sim.Join(ctx, domain.NewSessionID()); err != nil {
		t.Fatal(err)
	}
	if err := f.sim.Join(ctx, domain.NewSessionID()); !errors.Is(err, application.ErrRoomFull) {
		t.Errorf("err = %v, want ErrRoomFull", err)
	}
	if f.game.PlayerCount() != 1 {
		t.Errorf("players = %d", f.game.PlayerCount())
	}
}

func TestSimulation_JoinAfterLeaveFreesCapacity(t *testing.T) {
	f := newFixture(t, application.Config{MaxPlayers: 2})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false).AnyTimes()
	f.scripts.EXPECT().HasFunction("onLeave").Return(false).AnyTimes()

	ctx := context.Background()
	a, b, c := domain.NewSessionID(), domain.NewSessionID(), domain.NewSessionID()
	for _, id := range []domain.SessionID{a, b} {
		if err := f.sim.Join(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	f.sim.Leave(ctx, a)
	if err := f.sim.Join(ctx, c); err != nil {
		t.Fatalf("join after leave: %v", err)
	}
	if err := f.sim.Join(ctx, domain.NewSessionID()); !errors.Is(err, application.ErrRoomFull) {
		t.Errorf("err = %v, want ErrRoomFull", err)
	}
	if f.game.ConnectedCount() != 2 || f.game.PlayerCount() != 3 {
		t.Errorf("connected = %d, players = %d", f.game.ConnectedCount(), f.game.PlayerCount())
	}
}

func TestSimulation_LeaveKeepsSlot(t *testing.T) {
	f := newFixture(t, application.Config{})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false).Times(2)
	f.scripts.EXPECT().HasFunction("onLeave").Return(true)
	f.scripts.EXPECT().Call(gomock.Any(), "onLeave", gomock.Any())

	ctx := context.Background()
	leaving, staying := domain.NewSessionID(), domain.NewSessionID()
	_ = f.sim.Join(ctx, leaving)
	_ = f.sim.Join(ctx, staying)
	f.sim.Leave(ctx, leaving)
	// 未参加のセッションは無視される
	f.sim.Leave(ctx, domain.NewSessionID())

	p0, _ := f.game.Player(0)
	p1, _ := f.game.Player(1)
	if p0.Connected() || !p1.Connected() {
		t.Errorf("connected = %v, %v", p0.Connected(), p1.Connected())
	}
	if f.game.PlayerCount() != 2 || p1.Index() != 1 {
		t.Error("leave must not shift the roster")
	}
}

func TestSimulation_Chat(t *testing.T) {
	f := newFixture(t, application.Config{})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false)
	ctx := context.Background()
	sessionID := domain.NewSessionID()
	_ = f.sim.Join(ctx, sessionID)

	f.notifier.EXPECT().NotifyDebugMessage(gomock.Any(), "Player 1: hello")
	f.scripts.EXPECT().HasFunction("onCommand").Return(true)
	f.scripts.EXPECT().Call(gomock.Any(), "onCommand", gomock.Any(), gomock.Any(), script.String(".gold 500"))

	for _, text := range []string{"hello", ".gold 500"} {
		chat := &domain.ChatPayload{Text: text}
		if err := f.sim.HandleMessage(ctx, sessionID, message(sessionID, domain.DataTypeChat, chat.Encode())); err != nil {
			t.Fatalf("HandleMessage(%q): %v", text, err)
		}
	}
}

func TestSimulation_HandleMessageErrors(t *testing.T) {
	f := newFixture(t, application.Config{})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false)
	ctx := context.Background()
	member := domain.NewSessionID()
	_ = f.sim.Join(ctx, member)

	stranger := domain.NewSessionID()
	if err := f.sim.HandleMessage(ctx, stranger, message(stranger, domain.DataTypeChat, nil)); !errors.Is(err, application.ErrUnknownSession) {
		t.Errorf("err = %v, want ErrUnknownSession", err)
	}
	if err := f.sim.HandleMessage(ctx, member, message(member, domain.DataTypeInput, []byte{1})); err == nil {
		t.Error("short input payload must fail")
	}
	if err := f.sim.HandleMessage(ctx, member, []byte{1, 2, 3}); err == nil {
		t.Error("truncated header must fail")
	}
}

func TestSimulation_TickMovesAndCallsHook(t *testing.T) {
	f := newFixture(t, application.Config{MoveSpeed: 10})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false)
	ctx := context.Background()
	sessionID := domain.NewSessionID()
	_ = f.sim.Join(ctx, sessionID)
	c, _ := f.game.PlayerBySession(sessionID)
	start := c.Champion().Position()

	input := &domain.InputPayload{KeyMask: application.KeyRight}
	if err := f.sim.HandleMessage(ctx, sessionID, message(sessionID, domain.DataTypeInput, input.Encode())); err != nil {
		t.Fatal(err)
	}

	f.scripts.EXPECT().HasFunction("onTick").Return(true)
	f.scripts.EXPECT().Call(gomock.Any(), "onTick", script.Number(0.5)).Return(nil, errors.New("script error"))
	f.sim.Tick(ctx, 500*time.Millisecond)

	got := c.Champion().Position()
	if got.X != start.X+5 || got.Y != start.Y {
		t.Errorf("position = %v, want %v moved 5 right", got, start)
	}
}

func TestSimulation_TickExpiresBuffs(t *testing.T) {
	f := newFixture(t, application.Config{})
	f.scripts.EXPECT().HasFunction("onJoin").Return(false)
	f.scripts.EXPECT().HasFunction("onTick").Return(false).Times(2)
	ctx := context.Background()
	sessionID := domain.NewSessionID()
	_ = f.sim.Join(ctx, sessionID)
	c, _ := f.game.PlayerBySession(sessionID)
	u := c.Champion().Unit
	u.AddBuff(game.NewBuff("Haste", time.Second, u, u))

	f.sim.Tick(ctx, 600*time.Millisecond)
	if len(u.Buffs()) != 1 {
		t.Fatal("buff expired early")
	}
	f.sim.Tick(ctx, 600*time.Millisecond)
	if len(u.Buffs()) != 0 {
		t.Error("buff did not expire")
	}
}
