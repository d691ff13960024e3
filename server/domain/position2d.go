package domain

import (
	"errors"
	"math"
)

const Position2DSize = 8 // 2 * float32

type Position2D struct {
	X, Y float32
}

var ErrInvalidPosition2DData = errors.New("invalid position2d data: expected 8 bytes")

func ParsePosition2D(data []byte) (*Position2D, error) {
	if len(data) < Position2DSize {
		return nil, ErrInvalidPosition2DData
	}

	return &Position2D{
		X: math.Float32frombits(byteOrder.Uint32(data[0:4])),
		Y: math.Float32frombits(byteOrder.Uint32(data[4:8])),
	}, nil
}

func (p *Position2D) Encode() []byte {
	buf := make([]byte, Position2DSize)
	byteOrder.PutUint32(buf[0:4], math.Float32bits(p.X))
	byteOrder.PutUint32(buf[4:8], math.Float32bits(p.Y))
	return buf
}

// DistanceSq は2点間の距離の2乗を返す
func (p Position2D) DistanceSq(o Position2D) float32 {
	dx := o.X - p.X
	dy := o.Y - p.Y
	return dx*dx + dy*dy
}

// Distance は2点間の距離を返す
func (p Position2D) Distance(o Position2D) float32 {
	return float32(math.Sqrt(float64(p.DistanceSq(o))))
}

// MoveToward はoに向かって最大step進んだ位置を返す。到達した場合はoを返す。
func (p Position2D) MoveToward(o Position2D, step float32) (Position2D, bool) {
	dist := p.Distance(o)
	if dist <= step || dist < 0.0001 {
		return o, true
	}
	ratio := step / dist
	return Position2D{
		X: p.X + (o.X-p.X)*ratio,
		Y: p.Y + (o.Y-p.Y)*ratio,
	}, false
}
