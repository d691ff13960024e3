package game

import "time"

// Buff は時間制限つきの効果です。対象ユニットが所有し、付与元を参照します。
type Buff struct {
	name     string
	duration time.Duration
	elapsed  time.Duration
	stacks   uint8

	target *Unit
	source *Unit
}

func NewBuff(name string, duration time.Duration, target, source *Unit) *Buff {
	return &Buff{
		name:     name,
		duration: duration,
		stacks:   1,
		target:   target,
		source:   source,
	}
}

func (b *Buff) Name() string               { return b.name }
func (b *Buff) Duration() time.Duration    { return b.duration }
func (b *Buff) Target() *Unit              { return b.target }
func (b *Buff) Source() *Unit              { return b.source }
func (b *Buff) Stacks() uint8              { return b.stacks }
func (b *Buff) SetStacks(stacks uint8)     { b.stacks = stacks }
func (b *Buff) Remaining() time.Duration   { return max(b.duration-b.elapsed, 0) }
func (b *Buff) Expired() bool              { return b.elapsed >= b.duration }
func (b *Buff) advance(diff time.Duration) { b.elapsed += diff }
