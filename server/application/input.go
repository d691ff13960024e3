package application

import (
	"math"
	"time"

	"arena/server/domain"
	"arena/server/game"
)

// 入力のキービット
const (
	KeyUp uint32 = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
)

// inputDirection はキー入力を単位ベクトルにする。相反するキーは打ち消し合う。
func inputDirection(keyMask uint32) (domain.Position2D, bool) {
	var d domain.Position2D
	if keyMask&KeyUp != 0 {
		d.Y++
	}
	if keyMask&KeyDown != 0 {
		d.Y--
	}
	if keyMask&KeyRight != 0 {
		d.X++
	}
	if keyMask&KeyLeft != 0 {
		d.X--
	}
	if d.X == 0 && d.Y == 0 {
		return d, false
	}
	if d.X != 0 && d.Y != 0 {
		d.X *= math.Sqrt2 / 2
		d.Y *= math.Sqrt2 / 2
	}
	return d, true
}

// applyInput はチャンピオンを入力方向に動かす。
// 死亡中とダッシュ中は動かず、歩行不可の地点には入らない。
func (s *Simulation) applyInput(c *game.Champion, keyMask uint32, diff time.Duration) {
	if c.IsDead() || c.IsDashing() {
		return
	}
	dir, ok := inputDirection(keyMask)
	if !ok {
		return
	}
	step := s.config.MoveSpeed * float32(diff.Seconds())
	p := c.Position()
	next := domain.Position2D{X: p.X + dir.X*step, Y: p.Y + dir.Y*step}
	if !s.spatial.IsWalkable(next.X, next.Y) {
		return
	}
	c.SetPosition(next)
}
