package game

import "arena/server/domain"

// Target は固定座標またはユニットを指す空間参照です。
// ユニットを指す場合、座標は参照時点のユニット位置になります。
type Target struct {
	point domain.Position2D
	unit  *Unit
}

func PointTarget(p domain.Position2D) *Target {
	return &Target{point: p}
}

func UnitTarget(u *Unit) *Target {
	return &Target{unit: u}
}

func (t *Target) Position() domain.Position2D {
	if t.unit != nil {
		return t.unit.Position()
	}
	return t.point
}

// Unit は対象がユニットの場合にそのユニットを返す
func (t *Target) Unit() (*Unit, bool) {
	return t.unit, t.unit != nil
}
