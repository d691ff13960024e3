package api_test

import (
	"context"
	"encoding/hex"
	"errors"
	"math"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"arena/server/api"
	"arena/server/domain"
	"arena/server/game"
	"arena/server/game/mocks"
	"arena/server/spatial"
)

type fixture struct {
	notifier *mocks.MockNotifier
	game     *game.Game
	facade   *spatial.Facade
	ops      *api.Operations
}

// newFixture は100x100のマップを作る。セル(5, 5)だけが歩行不可。
func newFixture(t gomock.TestReporter, options api.Options) *fixture {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)

	grid, err := game.NewGridMesh(10, 10, 10)
	if err != nil {
		t.Fatalf("NewGridMesh: %v", err)
	}
	grid.Block(5, 5)
	m := game.NewMap(100, 100, grid)
	g := game.NewGame(m, game.DefaultItemCatalog(), notifier)
	facade := spatial.NewFacade(m)
	return &fixture{
		notifier: notifier,
		game:     g,
		facade:   facade,
		ops:      api.NewOperations(g, facade, options),
	}
}

func (f *fixture) addPlayer(name string, team game.TeamID, pos domain.Position2D) *game.ClientInfo {
	return f.game.AddPlayer(domain.NewSessionID(), name, game.NewChampion(team, pos, "Ezreal"))
}

func TestOperations_TeleportToResolvesToWalkable(t *testing.T) {
	f := newFixture(t, api.Options{})
	c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{X: 10, Y: 10})

	var notified domain.Position2D
	f.notifier.EXPECT().
		NotifyTeleport(gomock.Any(), c.Champion().Unit, gomock.Any()).
		Do(func(_ context.Context, _ *game.Unit, p domain.Position2D) { notified = p })

	if err := f.ops.TeleportTo(context.Background(), c.Champion().Unit, 55, 55); err != nil {
		t.Fatalf("TeleportTo: %v", err)
	}
	got := c.Champion().Position()
	if !f.facade.IsWalkable(got.X, got.Y) {
		t.Errorf("landed on blocked point %v", got)
	}
	if notified != got {
		t.Errorf("notified %v, unit at %v", notified, got)
	}
}

func TestOperations_TeleportToRejectsNonFinite(t *testing.T) {
	f := newFixture(t, api.Options{})
	c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{X: 10, Y: 10})

	err := f.ops.TeleportTo(context.Background(), c.Champion().Unit, float32(math.NaN()), 1)
	if !errors.Is(err, api.ErrInvalidPosition) {
		t.Errorf("err = %v, want ErrInvalidPosition", err)
	}
	if got := c.Champion().Position(); got != (domain.Position2D{X: 10, Y: 10}) {
		t.Errorf("unit moved to %v", got)
	}
}

func TestOperations_TeleportToAlwaysWalkableAndIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, api.Options{})
		f.notifier.EXPECT().NotifyTeleport(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
		u := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion().Unit

		x := rapid.Float32Range(-50, 150).Draw(t, "x")
		y := rapid.Float32Range(-50, 150).Draw(t, "y")
		if err := f.ops.TeleportTo(context.Background(), u, x, y); err != nil {
			t.Fatalf("TeleportTo: %v", err)
		}
		first := u.Position()
		if !f.ops.IsWalkable(first.X, first.Y) {
			t.Fatalf("(%v, %v) resolved to blocked %v", x, y, first)
		}
		if err := f.ops.TeleportTo(context.Background(), u, first.X, first.Y); err != nil {
			t.Fatalf("TeleportTo: %v", err)
		}
		if second := u.Position(); second != first {
			t.Fatalf("teleport to walkable %v moved unit to %v", first, second)
		}
	})
}

func TestOperations_DashToAnimationBeforeDash(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, api.Options{})
		c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{X: 20, Y: 20})
		u := c.Champion().Unit
		u.SetTargetUnit(game.NewUnit(game.TeamPurple, domain.Position2D{}))

		animation := rapid.StringMatching(`[A-Za-z0-9]{1,12}`).Draw(t, "animation")
		x := rapid.Float32Range(0, 100).Draw(t, "x")
		y := rapid.Float32Range(0, 100).Draw(t, "y")
		speed := rapid.Float32Range(1, 2000).Draw(t, "speed")

		gomock.InOrder(
			f.notifier.EXPECT().NotifySetAnimation(gomock.Any(), u, []string{"RUN", animation}),
			f.notifier.EXPECT().NotifyDash(gomock.Any(), u, domain.Position2D{X: x, Y: y}, speed, float32(0)),
		)

		if err := f.ops.DashTo(context.Background(), u, x, y, speed, 0, animation); err != nil {
			t.Fatalf("DashTo: %v", err)
		}
		if !u.IsDashing() {
			t.Error("unit is not dashing")
		}
		if u.TargetUnit() != nil {
			t.Error("dash must clear the target unit")
		}
	})
}

func TestOperations_DashToWithoutAnimation(t *testing.T) {
	f := newFixture(t, api.Options{})
	u := f.addPlayer("p0", game.TeamBlue, domain.Position2D{X: 20, Y: 20}).Champion().Unit

	f.notifier.EXPECT().NotifyDash(gomock.Any(), u, domain.Position2D{X: 30, Y: 20}, float32(800), float32(5))

	if err := f.ops.DashTo(context.Background(), u, 30, 20, 800, 5, ""); err != nil {
		t.Fatalf("DashTo: %v", err)
	}
}

func TestOperations_DashToValidation(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name    string
		x, y    float32
		speed   float32
		leap    float32
		wantErr error
	}{
		{"zero speed", 10, 10, 0, 0, api.ErrInvalidDashSpeed},
		{"negative speed", 10, 10, -5, 0, api.ErrInvalidDashSpeed},
		{"nan speed", 10, 10, nan, 0, api.ErrInvalidDashSpeed},
		{"nan position", nan, 10, 100, 0, api.ErrInvalidPosition},
		{"inf leap", 10, 10, 100, float32(math.Inf(1)), api.ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, api.Options{})
			u := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion().Unit

			err := f.ops.DashTo(context.Background(), u, tt.x, tt.y, tt.speed, tt.leap, "Spell1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if u.IsDashing() {
				t.Error("rejected dash must not start")
			}
		})
	}
}

func TestOperations_AddBuff(t *testing.T) {
	f := newFixture(t, api.Options{})
	caster := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion().Unit
	target := f.addPlayer("p1", game.TeamPurple, domain.Position2D{X: 5}).Champion().Unit

	f.notifier.EXPECT().NotifyAddBuff(gomock.Any(), gomock.Any()).Times(2)

	first, err := f.ops.AddBuff(context.Background(), "Ignite", 2.5, target, caster)
	if err != nil {
		t.Fatalf("AddBuff: %v", err)
	}
	if first.Duration().Seconds() != 2.5 || first.Target() != target || first.Source() != caster {
		t.Errorf("buff = %+v", first)
	}
	// 同名のバフは別個に付与される
	if _, err := f.ops.AddBuff(context.Background(), "Ignite", 1, target, caster); err != nil {
		t.Fatalf("AddBuff: %v", err)
	}
	if n := len(target.Buffs()); n != 2 {
		t.Errorf("buffs = %d, want 2", n)
	}
}

func TestOperations_AddBuffRejected(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		dead    bool
		wantErr error
	}{
		{"zero duration", 0, false, api.ErrInvalidBuffDuration},
		{"negative duration", -1, false, api.ErrInvalidBuffDuration},
		{"nan duration", math.NaN(), false, api.ErrInvalidBuffDuration},
		{"huge duration", 1e300, false, api.ErrInvalidBuffDuration},
		{"dead target", 1, true, api.ErrDeadTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, api.Options{})
			u := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion().Unit
			if tt.dead {
				u.Die()
			}
			if _, err := f.ops.AddBuff(context.Background(), "Stun", tt.seconds, u, u); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(u.Buffs()) != 0 {
				t.Error("rejected buff was attached")
			}
		})
	}
}

func TestOperations_Stacks(t *testing.T) {
	f := newFixture(t, api.Options{})
	u := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion().Unit
	f.notifier.EXPECT().NotifyAddBuff(gomock.Any(), gomock.Any())

	if got := f.ops.Stacks("Rage", u); got != 0 {
		t.Errorf("Stacks(absent) = %d", got)
	}
	if err := f.ops.SetStacks("Rage", u, 3); !errors.Is(err, api.ErrUnknownBuff) {
		t.Errorf("SetStacks(absent) err = %v", err)
	}
	if _, err := f.ops.AddBuff(context.Background(), "Rage", 10, u, u); err != nil {
		t.Fatal(err)
	}
	if got := f.ops.Stacks("Rage", u); got != 1 {
		t.Errorf("Stacks = %d, want 1", got)
	}
	if err := f.ops.SetStacks("Rage", u, 4); err != nil {
		t.Fatal(err)
	}
	if got := f.ops.Stacks("Rage", u); got != 4 {
		t.Errorf("Stacks = %d, want 4", got)
	}
	for _, bad := range []int64{-1, 256} {
		if err := f.ops.SetStacks("Rage", u, bad); !errors.Is(err, api.ErrInvalidStacks) {
			t.Errorf("SetStacks(%d) err = %v", bad, err)
		}
	}
}

func TestOperations_GoldAdditiveInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, api.Options{})
		c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion()

		start := rapid.Float64Range(-1e9, 1e9).Draw(t, "start")
		amount := rapid.Float64Range(-1e9, 1e9).Draw(t, "amount")
		if err := f.ops.SetGold(c, start); err != nil {
			t.Fatal(err)
		}
		before := c.Gold()
		if err := f.ops.AddGold(c, amount); err != nil {
			t.Fatal(err)
		}
		if err := f.ops.AddGold(c, -amount); err != nil {
			t.Fatal(err)
		}
		if c.Gold() != before {
			t.Fatalf("gold %v -> %v after +%v/-%v", before.Float(), c.Gold().Float(), amount, amount)
		}
	})
}

func TestOperations_GoldClampAtZero(t *testing.T) {
	f := newFixture(t, api.Options{ClampGoldAtZero: true})
	c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion()

	if err := f.ops.SetGold(c, 100); err != nil {
		t.Fatal(err)
	}
	if err := f.ops.AddGold(c, -250); err != nil {
		t.Fatal(err)
	}
	if c.Gold() != 0 {
		t.Errorf("gold = %v, want 0", c.Gold().Float())
	}
	if err := f.ops.SetGold(c, math.Inf(1)); !errors.Is(err, game.ErrGoldOutOfRange) {
		t.Errorf("err = %v, want ErrGoldOutOfRange", err)
	}
}

func TestOperations_AddItem(t *testing.T) {
	f := newFixture(t, api.Options{})
	c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion()

	f.notifier.EXPECT().
		NotifyItemBought(gomock.Any(), c, gomock.Any()).
		Do(func(_ context.Context, _ *game.Champion, item *game.Item) {
			if item.Type.ID != 1001 || item.Slot != 0 {
				t.Errorf("item = %+v", item)
			}
		})

	item, err := f.ops.AddItem(context.Background(), c, 1001)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if c.Inventory().Slot(0) != item {
		t.Error("item not placed in slot 0")
	}
}

func TestOperations_AddItemUnknownLeavesInventory(t *testing.T) {
	f := newFixture(t, api.Options{})
	c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion()

	for _, id := range []int64{9999, -1, math.MaxUint32 + 1} {
		if _, err := f.ops.AddItem(context.Background(), c, id); !errors.Is(err, api.ErrUnknownItem) {
			t.Errorf("AddItem(%d) err = %v, want ErrUnknownItem", id, err)
		}
	}
	if n := len(c.Inventory().Items()); n != 0 {
		t.Errorf("inventory has %d items", n)
	}
}

func TestOperations_AddItemInventoryFull(t *testing.T) {
	f := newFixture(t, api.Options{})
	c := f.addPlayer("p0", game.TeamBlue, domain.Position2D{}).Champion()
	f.notifier.EXPECT().NotifyItemBought(gomock.Any(), c, gomock.Any()).Times(game.InventorySize)

	for range game.InventorySize {
		if _, err := f.ops.AddItem(context.Background(), c, 1001); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.ops.AddItem(context.Background(), c, 1001); !errors.Is(err, game.ErrInventoryFull) {
		t.Errorf("err = %v, want ErrInventoryFull", err)
	}
}

func TestOperations_SendPacketRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, api.Options{})
		payload := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "payload")
		encoded := hex.EncodeToString(payload)
		if rapid.Bool().Draw(t, "upper") {
			encoded = strings.ToUpper(encoded)
		}

		var sent []byte
		f.notifier.EXPECT().BroadcastRaw(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, b []byte) { sent = b })

		if err := f.ops.SendPacket(context.Background(), encoded); err != nil {
			t.Fatalf("SendPacket(%q): %v", encoded, err)
		}
		if !strings.EqualFold(hex.EncodeToString(sent), encoded) {
			t.Fatalf("sent %x, input %s", sent, encoded)
		}
	})
}

func TestOperations_SendPacketDecodeErrors(t *testing.T) {
	f := newFixture(t, api.Options{})
	f.notifier.EXPECT().BroadcastRaw(gomock.Any(), []byte{0xde, 0xad, 0xbe, 0xef})

	if err := f.ops.SendPacket(context.Background(), "DE AD be ef"); err != nil {
		t.Fatalf("SendPacket: %v", err)
	}
	for _, in := range []string{"", " ", "abc", "zz", "0x12"} {
		if err := f.ops.SendPacket(context.Background(), in); !errors.Is(err, api.ErrPayloadDecode) {
			t.Errorf("SendPacket(%q) err = %v, want ErrPayloadDecode", in, err)
		}
	}
}

func TestOperations_Roster(t *testing.T) {
	f := newFixture(t, api.Options{})
	f.addPlayer("p0", game.TeamBlue, domain.Position2D{})
	f.addPlayer("p1", game.TeamPurple, domain.Position2D{})

	p0, err := f.ops.Player(0)
	if err != nil {
		t.Fatal(err)
	}
	p1, err := f.ops.Player(1)
	if err != nil {
		t.Fatal(err)
	}
	if p0 == p1 || p0.Index() != 0 || p1.Index() != 1 {
		t.Errorf("players = %+v, %+v", p0, p1)
	}
	for _, i := range []int64{2, -1} {
		if _, err := f.ops.Player(i); !errors.Is(err, api.ErrIndexOutOfRange) {
			t.Errorf("Player(%d) err = %v", i, err)
		}
		if _, err := f.ops.Champion(i); !errors.Is(err, api.ErrIndexOutOfRange) {
			t.Errorf("Champion(%d) err = %v", i, err)
		}
	}
	champs := f.ops.AllChampions()
	if len(champs) != 2 || champs[0] != p0.Champion() || champs[1] != p1.Champion() {
		t.Errorf("AllChampions = %v", champs)
	}
}

func TestOperations_RangeQueries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture(t, api.Options{})
		n := rapid.IntRange(1, 8).Draw(t, "champions")
		for i := range n {
			pos := domain.Position2D{
				X: rapid.Float32Range(0, 100).Draw(t, "x"),
				Y: rapid.Float32Range(0, 100).Draw(t, "y"),
			}
			c := f.addPlayer("p", game.TeamBlue, pos).Champion()
			if i%2 == 1 {
				c.Die()
			}
		}
		for range rapid.IntRange(0, 8).Draw(t, "minions") {
			f.game.Map().AddUnit(game.NewUnit(game.TeamNeutral, domain.Position2D{
				X: rapid.Float32Range(0, 100).Draw(t, "x"),
				Y: rapid.Float32Range(0, 100).Draw(t, "y"),
			}))
		}

		center := game.PointTarget(domain.Position2D{
			X: rapid.Float32Range(0, 100).Draw(t, "cx"),
			Y: rapid.Float32Range(0, 100).Draw(t, "cy"),
		})
		r := rapid.Float32Range(0, 150).Draw(t, "range")
		aliveOnly := rapid.Bool().Draw(t, "aliveOnly")

		units := f.ops.UnitsInRange(center, r, aliveOnly)
		inUnits := make(map[*game.Unit]bool, len(units))
		for _, u := range units {
			if aliveOnly && u.IsDead() {
				t.Fatalf("dead unit %v returned with aliveOnly", u.NetID())
			}
			inUnits[u] = true
		}
		for _, c := range f.ops.ChampionsInRange(center, r, aliveOnly) {
			if !inUnits[c.Unit] {
				t.Fatalf("champion %v not in units result", c.NetID())
			}
		}
	})
}

func TestOperations_NegativeRangeIsEmpty(t *testing.T) {
	f := newFixture(t, api.Options{})
	f.addPlayer("p0", game.TeamBlue, domain.Position2D{})
	center := game.PointTarget(domain.Position2D{})

	if got := f.ops.UnitsInRange(center, -1, false); len(got) != 0 {
		t.Errorf("UnitsInRange = %v", got)
	}
	if got := f.ops.ChampionsInRange(center, -1, false); len(got) != 0 {
		t.Errorf("ChampionsInRange = %v", got)
	}
}
