package spatial

import (
	"arena/server/domain"
	"arena/server/game"
)

// Facade はマップとナビゲーションメッシュへの問い合わせをまとめる。
// 結果はキャッシュせず、常に呼び出し時点の状態を返す。
type Facade struct {
	gameMap *game.Map
}

func NewFacade(gameMap *game.Map) *Facade {
	return &Facade{gameMap: gameMap}
}

// ClosestWalkable はpに最も近い歩行可能な点を返す。結果はマップ範囲内に収まる。
func (f *Facade) ClosestWalkable(p domain.Position2D) domain.Position2D {
	if nav := f.gameMap.NavMesh(); nav != nil {
		p = nav.ClosestTerrainExit(p)
	}
	return f.gameMap.Clamp(p)
}

func (f *Facade) IsWalkable(x, y float32) bool {
	nav := f.gameMap.NavMesh()
	if nav == nil {
		p := f.gameMap.Clamp(domain.Position2D{X: x, Y: y})
		return p.X == x && p.Y == y
	}
	return nav.IsWalkable(x, y)
}

func (f *Facade) UnitsInRange(target *game.Target, r float32, aliveOnly bool) []*game.Unit {
	return f.gameMap.UnitsInRange(target.Position(), r, aliveOnly)
}

func (f *Facade) ChampionsInRange(target *game.Target, r float32, aliveOnly bool) []*game.Champion {
	return f.gameMap.ChampionsInRange(target.Position(), r, aliveOnly)
}
