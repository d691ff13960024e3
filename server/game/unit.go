package game

import (
	"time"

	"arena/server/domain"
)

type dash struct {
	destination domain.Position2D
	speed       float32
}

// Unit はシミュレーション上のアクターです。
type Unit struct {
	id       NetID
	team     TeamID
	position domain.Position2D
	dead     bool

	buffs      []*Buff
	targetUnit *Unit
	dash       *dash

	// AddUnitでマップに配置されると設定される
	gameMap *Map
}

var _ Object = (*Unit)(nil)

func NewUnit(team TeamID, position domain.Position2D) *Unit {
	return &Unit{
		id:       NewNetID(),
		team:     team,
		position: position,
	}
}

func (u *Unit) NetID() NetID                { return u.id }
func (u *Unit) Team() TeamID                { return u.team }
func (u *Unit) Position() domain.Position2D { return u.position }
func (u *Unit) IsDead() bool                { return u.dead }

// SetPosition はユニットを移動する。マップに配置済みならマップ範囲内に収める。
func (u *Unit) SetPosition(p domain.Position2D) {
	if u.gameMap != nil {
		p = u.gameMap.Clamp(p)
	}
	u.position = p
}

func (u *Unit) TargetUnit() *Unit     { return u.targetUnit }
func (u *Unit) SetTargetUnit(t *Unit) { u.targetUnit = t }
func (u *Unit) IsDashing() bool       { return u.dash != nil }

// DashTo はdestinationへのダッシュを開始する。移動はUpdateで進む。
func (u *Unit) DashTo(destination domain.Position2D, speed float32) {
	u.dash = &dash{destination: destination, speed: speed}
}

// AddBuff はバフを追加する。同名のバフも別個に保持する。
func (u *Unit) AddBuff(b *Buff) {
	u.buffs = append(u.buffs, b)
}

// Buffs は付与中のバフを付与順で返す
func (u *Unit) Buffs() []*Buff {
	out := make([]*Buff, len(u.buffs))
	copy(out, u.buffs)
	return out
}

// Buff は指定した名前の最初のバフを返す
func (u *Unit) Buff(name string) (*Buff, bool) {
	for _, b := range u.buffs {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

// Die はユニットを死亡状態にする。バフとダッシュは破棄される。
func (u *Unit) Die() {
	u.dead = true
	u.buffs = nil
	u.dash = nil
	u.targetUnit = nil
}

func (u *Unit) Revive() {
	u.dead = false
}

// Update はdiffだけ時間を進める
func (u *Unit) Update(diff time.Duration) {
	if u.dead {
		return
	}
	if u.dash != nil {
		step := u.dash.speed * float32(diff.Seconds())
		next, arrived := u.position.MoveToward(u.dash.destination, step)
		u.SetPosition(next)
		if arrived {
			u.dash = nil
		}
	}

	kept := u.buffs[:0]
	for _, b := range u.buffs {
		b.advance(diff)
		if !b.Expired() {
			kept = append(kept, b)
		}
	}
	clear(u.buffs[len(kept):])
	u.buffs = kept
}
