package game

import (
	"math"
	"time"

	"arena/server/domain"
)

// Map はユニットの配置とナビゲーションを持つ。
// ユニットは追加順に保持され、範囲検索の結果もその順になる。
type Map struct {
	width, height float32
	nav           NavMesh

	units     []*Unit
	champions map[*Unit]*Champion
}

func NewMap(width, height float32, nav NavMesh) *Map {
	return &Map{
		width:     width,
		height:    height,
		nav:       nav,
		champions: make(map[*Unit]*Champion),
	}
}

func (m *Map) Width() float32   { return m.width }
func (m *Map) Height() float32  { return m.height }
func (m *Map) NavMesh() NavMesh { return m.nav }

// Clamp はpをマップ範囲内に収める
func (m *Map) Clamp(p domain.Position2D) domain.Position2D {
	if math.IsNaN(float64(p.X)) {
		p.X = 0
	}
	if math.IsNaN(float64(p.Y)) {
		p.Y = 0
	}
	p.X = min(max(p.X, 0), m.width)
	p.Y = min(max(p.Y, 0), m.height)
	return p
}

func (m *Map) AddUnit(u *Unit) {
	if u.gameMap == m {
		return
	}
	u.gameMap = m
	u.SetPosition(u.position)
	m.units = append(m.units, u)
}

func (m *Map) AddChampion(c *Champion) {
	m.AddUnit(c.Unit)
	m.champions[c.Unit] = c
}

// ChampionOf はユニットがチャンピオンであればそれを返す
func (m *Map) ChampionOf(u *Unit) (*Champion, bool) {
	c, ok := m.champions[u]
	return c, ok
}

func (m *Map) Units() []*Unit {
	out := make([]*Unit, len(m.units))
	copy(out, m.units)
	return out
}

// UnitsInRange はcenterから距離r以内のユニットを返す。aliveOnlyなら死亡ユニットを除く。
func (m *Map) UnitsInRange(center domain.Position2D, r float32, aliveOnly bool) []*Unit {
	out := make([]*Unit, 0)
	rr := r * r
	for _, u := range m.units {
		if aliveOnly && u.IsDead() {
			continue
		}
		if center.DistanceSq(u.Position()) <= rr {
			out = append(out, u)
		}
	}
	return out
}

func (m *Map) ChampionsInRange(center domain.Position2D, r float32, aliveOnly bool) []*Champion {
	out := make([]*Champion, 0)
	for _, u := range m.UnitsInRange(center, r, aliveOnly) {
		if c, ok := m.champions[u]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (m *Map) Update(diff time.Duration) {
	for _, u := range m.units {
		u.Update(diff)
	}
}
