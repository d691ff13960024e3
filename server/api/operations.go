package api

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"arena/server/domain"
	"arena/server/game"
	"arena/server/spatial"
	"arena/utils"
)

// Options はOperationsの動作を切り替える設定
type Options struct {
	// ClampGoldAtZero が真なら所持金は0未満にならない
	ClampGoldAtZero bool
}

// Operations はスクリプトに公開する操作の実装です。
// どの操作も検証をすべて終えてから状態を変更し、変更が成功した後にのみ通知します。
type Operations struct {
	game    *game.Game
	spatial *spatial.Facade
	options Options
}

func NewOperations(g *game.Game, facade *spatial.Facade, options Options) *Operations {
	return &Operations{
		game:    g,
		spatial: facade,
		options: options,
	}
}

func (o *Operations) notifier() game.Notifier {
	return o.game.Notifier()
}

// TeleportTo はユニットを(x, y)に最も近い歩行可能な点へ移動し、解決後の座標を通知する
func (o *Operations) TeleportTo(ctx context.Context, u *game.Unit, x, y float32) error {
	requested := domain.Position2D{X: x, Y: y}
	if !utils.FinitePosition(requested) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	u.SetPosition(o.spatial.ClosestWalkable(requested))
	o.notifier().NotifyTeleport(ctx, u, u.Position())
	return nil
}

func (o *Operations) IsWalkable(x, y float32) bool {
	return o.spatial.IsWalkable(x, y)
}

// time.Durationに収まるバフ時間の上限
const maxBuffSeconds = float64(math.MaxInt64 / int64(time.Second))

// AddBuff はtargetにバフを付与する。同名のバフがあっても別個に付与される。
func (o *Operations) AddBuff(ctx context.Context, name string, seconds float64, target, source *game.Unit) (*game.Buff, error) {
	if !utils.Finite(seconds) || seconds <= 0 || seconds > maxBuffSeconds {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuffDuration, seconds)
	}
	if target.IsDead() {
		return nil, ErrDeadTarget
	}
	duration := time.Duration(math.Round(seconds * float64(time.Second)))
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuffDuration, seconds)
	}
	b := game.NewBuff(name, duration, target, source)
	target.AddBuff(b)
	o.notifier().NotifyAddBuff(ctx, b)
	return b, nil
}

func (o *Operations) AddParticle(ctx context.Context, owner *game.Champion, particle string, x, y float32) error {
	p := domain.Position2D{X: x, Y: y}
	if !utils.FinitePosition(p) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	o.notifier().NotifyParticleSpawn(ctx, owner, particle, game.PointTarget(p))
	return nil
}

func (o *Operations) AddParticleTarget(ctx context.Context, owner *game.Champion, particle string, target *game.Target) {
	o.notifier().NotifyParticleSpawn(ctx, owner, particle, target)
}

func (o *Operations) PrintChat(ctx context.Context, message string) {
	o.notifier().NotifyDebugMessage(ctx, message)
}

// UnitsInRange は範囲内のユニットのスナップショットを返す。負の範囲は空になる。
func (o *Operations) UnitsInRange(target *game.Target, r float32, aliveOnly bool) []*game.Unit {
	if r < 0 {
		return []*game.Unit{}
	}
	return o.spatial.UnitsInRange(target, r, aliveOnly)
}

func (o *Operations) ChampionsInRange(target *game.Target, r float32, aliveOnly bool) []*game.Champion {
	if r < 0 {
		return []*game.Champion{}
	}
	return o.spatial.ChampionsInRange(target, r, aliveOnly)
}

// SetChampionModel はモデルを変更する。通知は別の同期処理に任せる。
func (o *Operations) SetChampionModel(c *game.Champion, model string) {
	c.SetModel(model)
}

// DashTo はユニットをダッシュさせる。animationが空でなければ、
// ダッシュの通知より先に ["RUN", animation] のアニメーション通知を送る。
// ダッシュの通知には解決前の要求座標が入る。
func (o *Operations) DashTo(ctx context.Context, u *game.Unit, x, y, speed, leapHeight float32, animation string) error {
	requested := domain.Position2D{X: x, Y: y}
	if !utils.FinitePosition(requested) || !utils.Finite32(leapHeight) {
		return fmt.Errorf("%w: (%v, %v) leap %v", ErrInvalidPosition, x, y, leapHeight)
	}
	if !utils.Finite32(speed) || speed <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDashSpeed, speed)
	}

	if animation != "" {
		o.notifier().NotifySetAnimation(ctx, u, []string{"RUN", animation})
	}
	destination := o.spatial.ClosestWalkable(requested)
	u.SetTargetUnit(nil)
	u.DashTo(destination, speed)
	o.notifier().NotifyDash(ctx, u, requested, speed, leapHeight)
	return nil
}

func (o *Operations) Team(obj game.Object) game.TeamID {
	return obj.Team()
}

func (o *Operations) IsDead(u *game.Unit) bool {
	return u.IsDead()
}

// SendPacket は16進文字列をデコードしてそのまま全クライアントに送る
func (o *Operations) SendPacket(ctx context.Context, rawHex string) error {
	payload, err := DecodeHexPayload(rawHex)
	if err != nil {
		return err
	}
	o.notifier().BroadcastRaw(ctx, payload)
	return nil
}

// SetGold は所持金をamountにする。金額は100万分の1単位に丸められるため、
// 絶対値が0.0000005未満の端数は失われる。
func (o *Operations) SetGold(c *game.Champion, amount float64) error {
	g, err := game.GoldFromFloat(amount)
	if err != nil {
		return err
	}
	c.SetGold(o.clampGold(g))
	return nil
}

// AddGold は所持金にamountを加える。SetGoldと同じく100万分の1単位に丸めるので、
// 絶対値が0.0000005未満のamountは何も変えない。
func (o *Operations) AddGold(c *game.Champion, amount float64) error {
	delta, err := game.GoldFromFloat(amount)
	if err != nil {
		return err
	}
	g, err := c.Gold().Add(delta)
	if err != nil {
		return err
	}
	c.SetGold(o.clampGold(g))
	return nil
}

func (o *Operations) clampGold(g game.Gold) game.Gold {
	if o.options.ClampGoldAtZero && g < 0 {
		return 0
	}
	return g
}

// Stacks はnameという名前の最初のバフのスタック数を返す。なければ0。
func (o *Operations) Stacks(name string, u *game.Unit) int {
	b, ok := u.Buff(name)
	if !ok {
		return 0
	}
	return int(b.Stacks())
}

func (o *Operations) SetStacks(name string, u *game.Unit, stacks int64) error {
	if stacks < 0 || stacks > math.MaxUint8 {
		return fmt.Errorf("%w: %d", ErrInvalidStacks, stacks)
	}
	b, ok := u.Buff(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBuff, name)
	}
	b.SetStacks(uint8(stacks))
	return nil
}

// AddItem はカタログからアイテムを引いてインベントリに追加し、購入を通知する
func (o *Operations) AddItem(ctx context.Context, c *game.Champion, id int64) (*game.Item, error) {
	if id < 0 || id > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	itemType, ok := o.game.Items().Lookup(uint32(id))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	item, err := c.Inventory().Add(itemType)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "item added", "champion", c.NetID(), "item", itemType.Name, "slot", item.Slot)
	o.notifier().NotifyItemBought(ctx, c, item)
	return item, nil
}

// AllChampions はロスター順のチャンピオンのスナップショットを返す
func (o *Operations) AllChampions() []*game.Champion {
	players := o.game.Players()
	out := make([]*game.Champion, len(players))
	for i, p := range players {
		out[i] = p.Champion()
	}
	return out
}

func (o *Operations) AllPlayers() []*game.ClientInfo {
	return o.game.Players()
}

func (o *Operations) Player(index int64) (*game.ClientInfo, error) {
	if index < 0 || index >= int64(o.game.PlayerCount()) {
		return nil, fmt.Errorf("%w: %d (players: %d)", ErrIndexOutOfRange, index, o.game.PlayerCount())
	}
	p, _ := o.game.Player(int(index))
	return p, nil
}

func (o *Operations) Champion(index int64) (*game.Champion, error) {
	p, err := o.Player(index)
	if err != nil {
		return nil, err
	}
	return p.Champion(), nil
}
